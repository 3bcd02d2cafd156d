package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaNotificationPublisher publishes channel notifications so every gateway instance can
// relay them to its websocket clients.
type KafkaNotificationPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaNotificationPublisher(brokers []string, topic string) *KafkaNotificationPublisher {
	return &KafkaNotificationPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		topic: topic,
	}
}

func (p *KafkaNotificationPublisher) Publish(ctx context.Context, notification domain.ChannelNotification) error {
	channel := strings.TrimSpace(notification.Channel)
	if channel == "" {
		return nil
	}
	event := rawEvent{
		Entity: "channel",
		Action: channel,
		Topic:  domain.ChannelTopic(channel),
		Data:   notification,
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode channel notification: %w", err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(channel), Value: value, Time: time.Now().UTC()})
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.BrokerMessagesTotal.WithLabelValues(p.topic, "out", status).Inc()
	if err != nil {
		slog.Warn("kafka publish failed", slog.String("topic", p.topic), slog.String("channel", channel), slog.Any("error", err))
		return fmt.Errorf("publish channel notification: %w", err)
	}
	slog.Debug("kafka channel notification published", slog.String("topic", p.topic), slog.String("channel", channel))
	return nil
}

func (p *KafkaNotificationPublisher) Close() error {
	return p.writer.Close()
}

var _ port.NotificationPublisher = (*KafkaNotificationPublisher)(nil)
