package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/domain"
)

// ChannelNotificationHandler relays channel notifications consumed from Kafka to the websocket
// clients subscribed to the channel topic.
type ChannelNotificationHandler struct {
	kafkaTopic  string
	broadcastUC *usecase.BroadcastUseCase
}

func NewChannelNotificationHandler(kafkaTopic string, broadcastUC *usecase.BroadcastUseCase) *ChannelNotificationHandler {
	return &ChannelNotificationHandler{kafkaTopic: strings.TrimSpace(kafkaTopic), broadcastUC: broadcastUC}
}

func (h *ChannelNotificationHandler) Topic() string { return h.kafkaTopic }

func (h *ChannelNotificationHandler) Handle(ctx context.Context, msg *domain.Message) error {
	notification, err := decodeChannelNotification(msg.Data)
	if err != nil {
		return fmt.Errorf("channel notification: %w", err)
	}
	channel := strings.TrimSpace(notification.Channel)
	if channel == "" {
		slog.Debug("channel notification without channel ignored", slog.String("topic", msg.Topic))
		return nil
	}
	out := &domain.Message{
		Topic:     domain.ChannelTopic(channel),
		Entity:    "channel",
		Action:    channel,
		Metadata:  msg.Metadata,
		Data:      notification,
		Timestamp: msg.Timestamp,
	}
	slog.Info("channel notification relayed", slog.String("channel", channel), slog.String("type", notification.Action.Type))
	h.broadcastUC.Execute(ctx, out)
	return nil
}

// decodeChannelNotification accepts the already decoded JSON object carried by a broker message.
func decodeChannelNotification(data any) (domain.ChannelNotification, error) {
	var notification domain.ChannelNotification
	if data == nil {
		return notification, fmt.Errorf("empty payload")
	}
	var raw []byte
	switch typed := data.(type) {
	case string:
		raw = []byte(typed)
	case []byte:
		raw = typed
	default:
		encoded, err := json.Marshal(typed)
		if err != nil {
			return notification, err
		}
		raw = encoded
	}
	if err := json.Unmarshal(raw, &notification); err != nil {
		return notification, err
	}
	return notification, nil
}

var _ port.TopicHandler = (*ChannelNotificationHandler)(nil)
