package usecase

import (
	"context"

	"dsfrGateway/internal/modules/actions/domain"
)

// ActionButtonUseCase wires a dispatcher behind the in-flight guard of a button instance.
type ActionButtonUseCase struct {
	dispatcher *DispatchUseCase
	guard      *InFlightGuard
}

func NewActionButtonUseCase(dispatcher *DispatchUseCase, guard *InFlightGuard) *ActionButtonUseCase {
	return &ActionButtonUseCase{dispatcher: dispatcher, guard: guard}
}

// Trigger dispatches the descriptor unless the same button is already busy.
func (uc *ActionButtonUseCase) Trigger(ctx context.Context, instance Instance, descriptor domain.ActionDescriptor) (Outcome, error) {
	release, err := uc.guard.Acquire(ctx, instance)
	if err != nil {
		return Outcome{}, err
	}
	defer release()
	return uc.dispatcher.Dispatch(ctx, descriptor)
}
