package port

import (
	"context"

	"dsfrGateway/internal/modules/actions/domain"
)

// Broadcaster sends messages to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles the messages consumed from one broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
