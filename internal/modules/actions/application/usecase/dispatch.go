package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
	"dsfrGateway/internal/shared/session"
)

// OutcomeKind names the single side effect a dispatch produced.
type OutcomeKind string

const (
	OutcomeNavigate OutcomeKind = "navigate"
	OutcomeReload   OutcomeKind = "reload"
	OutcomeAlert    OutcomeKind = "alert"
	OutcomeNone     OutcomeKind = "none"
	OutcomeIgnored  OutcomeKind = "ignored"
)

// Outcome reports what a dispatch did.
type Outcome struct {
	Kind         OutcomeKind                 `json:"kind"`
	RecordID     string                      `json:"recordId,omitempty"`
	Navigation   *domain.NavigationRequest   `json:"navigation,omitempty"`
	Reload       []domain.RecordRef          `json:"reload,omitempty"`
	Notification *domain.NotificationPayload `json:"notification,omitempty"`
}

// DispatchUseCase maps an action descriptor to one store mutation and exactly one follow-up
// side effect. It keeps no state between calls.
type DispatchUseCase struct {
	store     port.RecordStore
	navigator port.Navigator
	refresher port.RecordRefresher
	presenter port.AlertPresenter
}

func NewDispatchUseCase(store port.RecordStore, navigator port.Navigator, refresher port.RecordRefresher, presenter port.AlertPresenter) *DispatchUseCase {
	return &DispatchUseCase{store: store, navigator: navigator, refresher: refresher, presenter: presenter}
}

// Dispatch runs the descriptor. Remote failures are handled here and surface only as an alert
// outcome; the returned error is non-nil solely for an unsupported action type.
func (uc *DispatchUseCase) Dispatch(ctx context.Context, descriptor domain.ActionDescriptor) (Outcome, error) {
	operation := uc.operationFor(descriptor.Type)
	if operation == nil {
		slog.Warn("dispatch ignored unsupported action type", slog.String("type", string(descriptor.Type)), slog.String("sessionId", session.SessionID(ctx)))
		metrics.DispatchTotal.WithLabelValues("unsupported", string(OutcomeIgnored)).Inc()
		return Outcome{Kind: OutcomeIgnored}, domain.ErrUnsupportedActionType
	}

	slog.Debug("dispatch start", slog.String("type", string(descriptor.Type)), slog.String("objectName", descriptor.ObjectName()), slog.String("sessionId", session.SessionID(ctx)))
	started := time.Now()
	result, err := operation(ctx, descriptor.Params)
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StoreCallDuration.WithLabelValues(string(descriptor.Type), status).Observe(time.Since(started).Seconds())

	var outcome Outcome
	if err != nil {
		outcome = uc.handleFailure(ctx, descriptor, err)
	} else {
		outcome = uc.handleSuccess(ctx, descriptor, result)
	}
	metrics.DispatchTotal.WithLabelValues(string(descriptor.Type), string(outcome.Kind)).Inc()
	return outcome, nil
}

func (uc *DispatchUseCase) operationFor(actionType domain.ActionType) func(context.Context, map[string]any) (port.MutationResult, error) {
	switch actionType {
	case domain.ActionCreate:
		return uc.store.Create
	case domain.ActionUpdate:
		return uc.store.Update
	case domain.ActionDelete:
		return uc.store.Delete
	default:
		return nil
	}
}

func (uc *DispatchUseCase) handleSuccess(ctx context.Context, descriptor domain.ActionDescriptor, result port.MutationResult) Outcome {
	if descriptor.Navigate && result.RecordID != "" {
		request := domain.NavigationRequest{
			RecordID:   result.RecordID,
			ObjectName: descriptor.ObjectName(),
			ViewMode:   domain.ViewModeView,
		}
		slog.Info("dispatch navigating to record", slog.String("recordId", request.RecordID), slog.String("objectName", request.ObjectName))
		if uc.navigator != nil {
			uc.navigator.Navigate(ctx, request)
		}
		return Outcome{Kind: OutcomeNavigate, RecordID: result.RecordID, Navigation: &request}
	}

	if refs := domain.RecordRefs(descriptor.Reload); len(refs) > 0 {
		slog.Info("dispatch triggering record reload", slog.Any("recordIds", domain.RecordIDs(refs)))
		if uc.refresher != nil {
			if err := uc.refresher.Refresh(ctx, refs); err != nil {
				slog.Warn("dispatch record reload failed", slog.Any("recordIds", domain.RecordIDs(refs)), slog.Any("error", err))
			}
		}
		return Outcome{Kind: OutcomeReload, RecordID: result.RecordID, Reload: refs}
	}

	slog.Debug("dispatch done without follow-up", slog.String("type", string(descriptor.Type)))
	return Outcome{Kind: OutcomeNone, RecordID: result.RecordID}
}

func (uc *DispatchUseCase) handleFailure(ctx context.Context, descriptor domain.ActionDescriptor, err error) Outcome {
	slog.Warn("dispatch action failed", slog.String("type", string(descriptor.Type)), slog.String("sessionId", session.SessionID(ctx)), slog.Any("error", err))
	payload := domain.FailureNotification(err)
	if uc.presenter != nil {
		if presentErr := uc.presenter.Present(ctx, payload); presentErr != nil && !errors.Is(presentErr, context.Canceled) {
			slog.Warn("dispatch alert not acknowledged", slog.Any("error", presentErr))
		}
	}
	return Outcome{Kind: OutcomeAlert, Notification: &payload}
}
