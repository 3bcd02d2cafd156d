package broker

import (
	"context"
	"log/slog"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/modules/actions/infrastructure"
)

func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
) {
	if len(brokers) == 0 {
		// kafka.NewReader panics on an empty broker list
		return
	}
	for _, topic := range registry.Topics() {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(kafkaTopic string, msg *domain.Message) error {
				return registry.Dispatch(ctx, kafkaTopic, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
}
