package domain

import "strings"

const (
	SystemEntity    = "system"
	ActionEntity    = "action"
	AlertEntity     = "alert"
	RecordEntity    = "record"
	ComponentEntity = "component"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	TopicActionNavigate  = ActionEntity + ".navigate"
	TopicActionCompleted = ActionEntity + ".completed"
	TopicAlertShow       = AlertEntity + ".show"
	TopicRecordRefresh   = RecordEntity + ".refresh"
	TopicComponentBusy   = ComponentEntity + ".busy"
	TopicComponentIdle   = ComponentEntity + ".idle"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionNavigate  = "navigate"
	ActionCompleted = "completed"
	ActionShow      = "show"
	ActionRefresh   = "refresh"
	ActionBusy      = "busy"
	ActionIdle      = "idle"
)

// ChannelTopic returns the topic clients subscribe to for a notification channel.
func ChannelTopic(channel string) string {
	return buildEntityTopic("channel", channel)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
