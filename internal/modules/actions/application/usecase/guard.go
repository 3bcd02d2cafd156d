package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
	"dsfrGateway/internal/shared/session"
)

// ErrOperationInFlight is returned when a component instance already has a pending operation.
var ErrOperationInFlight = errors.New("operation already in flight")

// Instance identifies one component on one page session of one user.
type Instance struct {
	UserID    string
	SessionID string
	Component string
}

// InstanceFromContext binds a component name to the user and session carried by ctx.
func InstanceFromContext(ctx context.Context, component string) Instance {
	identity, _ := session.FromContext(ctx)
	return Instance{UserID: identity.UserID, SessionID: identity.SessionID, Component: strings.TrimSpace(component)}
}

func (i Instance) key() string {
	return i.UserID + "\x00" + i.SessionID + "\x00" + i.Component
}

// InFlightGuard keeps one {Idle, InFlight} slot per component instance.
type InFlightGuard struct {
	mu       sync.Mutex
	slots    map[string]domain.OperationState
	notifier port.ControlNotifier
}

func NewInFlightGuard(notifier port.ControlNotifier) *InFlightGuard {
	return &InFlightGuard{slots: make(map[string]domain.OperationState), notifier: notifier}
}

// Acquire marks the instance in flight. The returned release must be deferred by the caller;
// calling it more than once is harmless.
func (g *InFlightGuard) Acquire(ctx context.Context, instance Instance) (func(), error) {
	key := instance.key()
	g.mu.Lock()
	if g.slots[key] == domain.StateInFlight {
		g.mu.Unlock()
		metrics.InFlightRejectedTotal.WithLabelValues(instance.Component).Inc()
		slog.Warn("in-flight guard rejected trigger", slog.String("userId", instance.UserID), slog.String("sessionId", instance.SessionID), slog.String("component", instance.Component))
		return nil, ErrOperationInFlight
	}
	g.slots[key] = domain.StateInFlight
	g.mu.Unlock()
	g.notify(ctx, instance, true)

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.slots, key)
			g.mu.Unlock()
			g.notify(context.WithoutCancel(ctx), instance, false)
		})
	}, nil
}

// State reports the current slot state of the instance.
func (g *InFlightGuard) State(instance Instance) domain.OperationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.slots[instance.key()]
}

func (g *InFlightGuard) notify(ctx context.Context, instance Instance, busy bool) {
	if g.notifier == nil || instance.Component == "" {
		return
	}
	g.notifier.ControlState(ctx, instance.Component, busy)
}
