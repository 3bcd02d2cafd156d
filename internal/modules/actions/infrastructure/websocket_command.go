package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/session"
)

const CommandAlertAck = "alert.ack"

type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

// AlertAckCommand is the payload of an alert.ack command.
type AlertAckCommand struct {
	AlertID string `json:"alertId"`
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

type CommandProcessor struct {
	hub             *Hub
	handlers        map[string]CommandHandler
	fallback        CommandHandler
	fallbackTimeout time.Duration
}

// NewCommandProcessor registers the built-in commands. Unknown actions go to fallback, run in
// their own goroutine with a context carrying the client identity and bounded by timeout.
func NewCommandProcessor(hub *Hub, fallback CommandHandler, timeout time.Duration) *CommandProcessor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	processor := &CommandProcessor{
		hub:             hub,
		handlers:        make(map[string]CommandHandler),
		fallback:        fallback,
		fallbackTimeout: timeout,
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	processor.Register(CommandAlertAck, processor.handleAlertAck)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	ctx := session.WithIdentity(context.Background(), client.Identity())
	if handler, ok := p.handlers[action]; ok {
		handler(ctx, client, cmd)
		return
	}

	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("action", action))
		return
	}

	ctx, cancel := context.WithTimeout(ctx, p.fallbackTimeout)
	go func() {
		defer cancel()
		p.fallback(ctx, client, cmd)
	}()
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("ws subscribe ignored empty topic", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
	slog.Debug("ws unsubscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	ack := domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(&ack)
}

func (p *CommandProcessor) handleAlertAck(_ context.Context, client *Client, cmd Command) {
	var payload AlertAckCommand
	if len(cmd.Payload) > 0 {
		if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
			SendCommandError(client, CommandAlertAck, "invalid alert.ack payload")
			return
		}
	}
	alertID := strings.TrimSpace(payload.AlertID)
	if alertID == "" {
		SendCommandError(client, CommandAlertAck, "alertId is required")
		return
	}
	if !p.hub.acknowledge(client.sessionID, alertID) {
		slog.Debug("ws alert ack ignored", slog.String("sessionId", client.sessionID), slog.String("alertId", alertID))
	}
}

// SendCommandError reports a rejected command to the client.
func SendCommandError(client *Client, action, message string) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemError,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionError,
		Metadata:  map[string]string{"command": action},
		Data:      map[string]string{"message": message},
		Timestamp: time.Now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
