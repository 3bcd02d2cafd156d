package infrastructure

import (
	"context"
	"log/slog"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

// HandlerRegistry routes consumed broker messages to the handler of their Kafka topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Topics lists the Kafka topics that have a handler.
func (r *HandlerRegistry) Topics() []string {
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

func (r *HandlerRegistry) Dispatch(ctx context.Context, kafkaTopic string, msg *domain.Message) error {
	if handler, ok := r.handlers[kafkaTopic]; ok {
		return handler.Handle(ctx, msg)
	}
	slog.Debug("broker message without handler", slog.String("kafkaTopic", kafkaTopic), slog.String("topic", msg.Topic))
	return nil
}
