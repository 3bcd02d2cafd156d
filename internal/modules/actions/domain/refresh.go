package domain

// RefreshChannel is the notification channel page containers listen on to reload their content.
const RefreshChannel = "dsfrRefresh"

// ChannelAction is the action part of a channel notification.
type ChannelAction struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// ChannelNotification is published on a named channel for other components of the page.
type ChannelNotification struct {
	Channel string        `json:"channel"`
	Action  ChannelAction `json:"action"`
	Context any           `json:"context"`
}

// PageRefreshNotification asks page containers to refresh after an upload.
func PageRefreshNotification() ChannelNotification {
	return ChannelNotification{
		Channel: RefreshChannel,
		Action:  ChannelAction{Type: "done", Params: map[string]any{"type": "refresh"}},
	}
}
