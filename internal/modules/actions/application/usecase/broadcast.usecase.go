package usecase

import (
	"context"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

type BroadcastUseCase struct {
	broadcaster port.Broadcaster
}

func NewBroadcastUseCase(b port.Broadcaster) *BroadcastUseCase {
	return &BroadcastUseCase{broadcaster: b}
}

func (uc *BroadcastUseCase) Execute(ctx context.Context, msg *domain.Message) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	uc.broadcaster.Broadcast(ctx, msg)
}
