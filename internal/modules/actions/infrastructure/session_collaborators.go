package infrastructure

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
	"dsfrGateway/internal/shared/session"

	"github.com/google/uuid"
)

// SessionNavigator sends navigation requests to the websocket client of the calling session.
type SessionNavigator struct {
	hub *Hub
}

func NewSessionNavigator(hub *Hub) *SessionNavigator {
	return &SessionNavigator{hub: hub}
}

func (n *SessionNavigator) Navigate(ctx context.Context, request domain.NavigationRequest) {
	identity, _ := session.FromContext(ctx)
	if identity.SessionID == "" {
		slog.Debug("navigation without session dropped", slog.String("recordId", request.RecordID))
		return
	}
	msg := &domain.Message{
		Topic:      domain.TopicActionNavigate,
		Entity:     domain.ActionEntity,
		Action:     domain.ActionNavigate,
		ResourceID: request.RecordID,
		Data:       request,
		Timestamp:  time.Now().UTC(),
	}
	if !n.hub.SendToSession(identity, msg) {
		slog.Debug("navigation target session not connected", slog.String("sessionId", identity.SessionID))
	}
}

// SessionAlertPresenter shows alerts on the calling session and waits for the alert.ack command.
type SessionAlertPresenter struct {
	hub     *Hub
	timeout time.Duration
}

func NewSessionAlertPresenter(hub *Hub, timeout time.Duration) *SessionAlertPresenter {
	return &SessionAlertPresenter{hub: hub, timeout: timeout}
}

// Present returns nil right away when no client is connected for the session.
func (p *SessionAlertPresenter) Present(ctx context.Context, payload domain.NotificationPayload) error {
	identity, _ := session.FromContext(ctx)
	sessionID := identity.SessionID
	if sessionID == "" || !p.hub.Connected(identity) {
		slog.Debug("alert without connected session not shown", slog.String("sessionId", sessionID), slog.Int("alerts", len(payload.Alerts)))
		return nil
	}

	alertID := uuid.NewString()
	done, cancelAck := p.hub.expectAck(sessionID, alertID)
	defer cancelAck()

	msg := &domain.Message{
		Topic:      domain.TopicAlertShow,
		Entity:     domain.AlertEntity,
		Action:     domain.ActionShow,
		ResourceID: alertID,
		Metadata:   map[string]string{"alertId": alertID},
		Data:       payload,
		Timestamp:  time.Now().UTC(),
	}
	if !p.hub.SendToSession(identity, msg) {
		return nil
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	started := time.Now()
	defer func() {
		metrics.AlertAckWaitSeconds.Observe(time.Since(started).Seconds())
	}()
	select {
	case <-done:
		slog.Debug("alert acknowledged", slog.String("sessionId", sessionID), slog.String("alertId", alertID))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SessionControlNotifier tells the session client that a control became busy or idle.
type SessionControlNotifier struct {
	hub *Hub
}

func NewSessionControlNotifier(hub *Hub) *SessionControlNotifier {
	return &SessionControlNotifier{hub: hub}
}

func (n *SessionControlNotifier) ControlState(ctx context.Context, component string, busy bool) {
	identity, _ := session.FromContext(ctx)
	if identity.SessionID == "" {
		return
	}
	topic, action := domain.TopicComponentIdle, domain.ActionIdle
	if busy {
		topic, action = domain.TopicComponentBusy, domain.ActionBusy
	}
	n.hub.SendToSession(identity, &domain.Message{
		Topic:      topic,
		Entity:     domain.ComponentEntity,
		Action:     action,
		ResourceID: strings.TrimSpace(component),
		Timestamp:  time.Now().UTC(),
	})
}

// HubRecordRefresher broadcasts stale record ids to the clients subscribed to record.refresh.
type HubRecordRefresher struct {
	hub port.Broadcaster
}

func NewHubRecordRefresher(hub port.Broadcaster) *HubRecordRefresher {
	return &HubRecordRefresher{hub: hub}
}

func (r *HubRecordRefresher) Refresh(ctx context.Context, refs []domain.RecordRef) error {
	if len(refs) == 0 {
		return nil
	}
	r.hub.Broadcast(ctx, &domain.Message{
		Topic:     domain.TopicRecordRefresh,
		Entity:    domain.RecordEntity,
		Action:    domain.ActionRefresh,
		Data:      map[string]any{"records": refs},
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// HubNotificationPublisher delivers channel notifications through the local hub only.
type HubNotificationPublisher struct {
	hub port.Broadcaster
}

func NewHubNotificationPublisher(hub port.Broadcaster) *HubNotificationPublisher {
	return &HubNotificationPublisher{hub: hub}
}

func (p *HubNotificationPublisher) Publish(ctx context.Context, notification domain.ChannelNotification) error {
	channel := strings.TrimSpace(notification.Channel)
	if channel == "" {
		return nil
	}
	p.hub.Broadcast(ctx, &domain.Message{
		Topic:     domain.ChannelTopic(channel),
		Entity:    "channel",
		Action:    channel,
		Data:      notification,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

var (
	_ port.Navigator             = (*SessionNavigator)(nil)
	_ port.AlertPresenter        = (*SessionAlertPresenter)(nil)
	_ port.ControlNotifier       = (*SessionControlNotifier)(nil)
	_ port.RecordRefresher       = (*HubRecordRefresher)(nil)
	_ port.NotificationPublisher = (*HubNotificationPublisher)(nil)
	_ port.Broadcaster           = (*Hub)(nil)
)
