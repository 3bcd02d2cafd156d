package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/session"
)

func attachTestClient(hub *Hub, identity session.Identity, topics ...string) *Client {
	client := NewClient(hub, nil, identity, 16, NewCommandProcessor(hub, nil, time.Second))
	hub.AttachClient(client, topics)
	return client
}

func nextMessage(t *testing.T, client *Client) domain.Message {
	t.Helper()
	select {
	case raw := <-client.send:
		var msg domain.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("invalid message: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no message received")
	}
	return domain.Message{}
}

func assertNoMessage(t *testing.T, client *Client) {
	t.Helper()
	select {
	case raw := <-client.send:
		t.Fatalf("unexpected message: %s", raw)
	default:
	}
}

func TestHub_BroadcastFiltersByMetadata(t *testing.T) {
	hub := NewHub()
	alice := attachTestClient(hub, session.Identity{SessionID: "s1", UserID: "alice"}, domain.TopicRecordRefresh)
	bob := attachTestClient(hub, session.Identity{SessionID: "s2", UserID: "bob"}, domain.TopicRecordRefresh)
	other := attachTestClient(hub, session.Identity{SessionID: "s3", UserID: "carol"})

	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.TopicRecordRefresh})
	nextMessage(t, alice)
	nextMessage(t, bob)
	assertNoMessage(t, other)

	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.TopicRecordRefresh, Metadata: map[string]string{"userId": "bob"}})
	assertNoMessage(t, alice)
	nextMessage(t, bob)

	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.TopicRecordRefresh, Metadata: map[string]string{"sessionId": "s1"}})
	nextMessage(t, alice)
	assertNoMessage(t, bob)
}

func TestHub_SendToSessionChecksUser(t *testing.T) {
	hub := NewHub()
	client := attachTestClient(hub, session.Identity{SessionID: "s1", UserID: "alice"})

	if hub.SendToSession(session.Identity{SessionID: "s1", UserID: "mallory"}, &domain.Message{Topic: "x"}) {
		t.Fatalf("another user must not reach the session")
	}
	if !hub.SendToSession(session.Identity{SessionID: "s1", UserID: "alice"}, &domain.Message{Topic: "x"}) {
		t.Fatalf("expected delivery")
	}
	nextMessage(t, client)
	if hub.SendToSession(session.Identity{SessionID: "missing"}, &domain.Message{Topic: "x"}) {
		t.Fatalf("unknown session must report no delivery")
	}
}

func TestHub_ReplacesClientOfSameSession(t *testing.T) {
	hub := NewHub()
	first := attachTestClient(hub, session.Identity{SessionID: "s1"}, domain.TopicRecordRefresh)
	second := attachTestClient(hub, session.Identity{SessionID: "s1"}, domain.TopicRecordRefresh)

	select {
	case <-first.closed:
	case <-time.After(time.Second):
		t.Fatalf("previous client must be closed")
	}
	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.TopicRecordRefresh})
	nextMessage(t, second)
}

func TestCommandProcessor_SubscribeAndPing(t *testing.T) {
	hub := NewHub()
	client := attachTestClient(hub, session.Identity{SessionID: "s1"})

	client.commands.Process(client, Command{Action: " Subscribe ", Topic: domain.ChannelTopic(domain.RefreshChannel)})
	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.ChannelTopic(domain.RefreshChannel)})
	nextMessage(t, client)

	client.commands.Process(client, Command{Action: "ping"})
	if msg := nextMessage(t, client); msg.Topic != domain.TopicSystemPong {
		t.Fatalf("expected pong, got %s", msg.Topic)
	}

	client.commands.Process(client, Command{Action: "unsubscribe", Topic: domain.ChannelTopic(domain.RefreshChannel)})
	hub.Broadcast(context.Background(), &domain.Message{Topic: domain.ChannelTopic(domain.RefreshChannel)})
	assertNoMessage(t, client)
}

func TestCommandProcessor_FallbackReceivesIdentity(t *testing.T) {
	hub := NewHub()
	got := make(chan session.Identity, 1)
	processor := NewCommandProcessor(hub, func(ctx context.Context, _ *Client, cmd Command) {
		identity, _ := session.FromContext(ctx)
		got <- identity
	}, time.Second)
	client := NewClient(hub, nil, session.Identity{SessionID: "s1", UserID: "alice", Token: "tok"}, 4, processor)
	hub.AttachClient(client, nil)

	processor.Process(client, Command{Action: "dispatch"})
	select {
	case identity := <-got:
		if identity.SessionID != "s1" || identity.Token != "tok" {
			t.Fatalf("unexpected identity: %#v", identity)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fallback not invoked")
	}
}

func TestSessionAlertPresenter_WaitsForAck(t *testing.T) {
	hub := NewHub()
	identity := session.Identity{SessionID: "s1", UserID: "alice"}
	client := attachTestClient(hub, identity)
	presenter := NewSessionAlertPresenter(hub, 5*time.Second)

	done := make(chan error, 1)
	go func() {
		done <- presenter.Present(session.WithIdentity(context.Background(), identity), domain.SuccessNotification("t", "m"))
	}()

	msg := nextMessage(t, client)
	if msg.Topic != domain.TopicAlertShow {
		t.Fatalf("expected alert.show, got %s", msg.Topic)
	}
	alertID := msg.Metadata["alertId"]
	if alertID == "" {
		t.Fatalf("alert id missing")
	}

	select {
	case err := <-done:
		t.Fatalf("present returned before ack: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	payload, _ := json.Marshal(AlertAckCommand{AlertID: alertID})
	client.commands.Process(client, Command{Action: CommandAlertAck, Payload: payload})
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("present not released by ack")
	}
}

func TestSessionAlertPresenter_DisconnectReleases(t *testing.T) {
	hub := NewHub()
	identity := session.Identity{SessionID: "s1"}
	client := attachTestClient(hub, identity)
	presenter := NewSessionAlertPresenter(hub, 0)

	done := make(chan error, 1)
	go func() {
		done <- presenter.Present(session.WithIdentity(context.Background(), identity), domain.SuccessNotification("t", "m"))
	}()
	nextMessage(t, client)
	hub.detachClient(client)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("present not released by disconnect")
	}
}

func TestSessionAlertPresenter_TimesOut(t *testing.T) {
	hub := NewHub()
	identity := session.Identity{SessionID: "s1"}
	attachTestClient(hub, identity)
	presenter := NewSessionAlertPresenter(hub, 10*time.Millisecond)

	err := presenter.Present(session.WithIdentity(context.Background(), identity), domain.SuccessNotification("t", "m"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSessionAlertPresenter_NoSession(t *testing.T) {
	presenter := NewSessionAlertPresenter(NewHub(), time.Second)
	if err := presenter.Present(context.Background(), domain.SuccessNotification("t", "m")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionNavigatorAndControlNotifier(t *testing.T) {
	hub := NewHub()
	identity := session.Identity{SessionID: "s1"}
	client := attachTestClient(hub, identity)
	ctx := session.WithIdentity(context.Background(), identity)

	NewSessionNavigator(hub).Navigate(ctx, domain.NavigationRequest{RecordID: "a01", ViewMode: domain.ViewModeView})
	if msg := nextMessage(t, client); msg.Topic != domain.TopicActionNavigate || msg.ResourceID != "a01" {
		t.Fatalf("unexpected navigation message: %#v", msg)
	}

	notifier := NewSessionControlNotifier(hub)
	notifier.ControlState(ctx, "close-request", true)
	notifier.ControlState(ctx, "close-request", false)
	if msg := nextMessage(t, client); msg.Topic != domain.TopicComponentBusy {
		t.Fatalf("expected busy, got %s", msg.Topic)
	}
	if msg := nextMessage(t, client); msg.Topic != domain.TopicComponentIdle || msg.ResourceID != "close-request" {
		t.Fatalf("unexpected idle message: %#v", msg)
	}
}

func TestHubRecordRefresherAndPublisher(t *testing.T) {
	hub := NewHub()
	client := attachTestClient(hub, session.Identity{SessionID: "s1"}, domain.TopicRecordRefresh, domain.ChannelTopic(domain.RefreshChannel))

	if err := NewHubRecordRefresher(hub).Refresh(context.Background(), []domain.RecordRef{{RecordID: "a01"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := nextMessage(t, client)
	data, _ := msg.Data.(map[string]any)
	records, _ := data["records"].([]any)
	if msg.Topic != domain.TopicRecordRefresh || len(records) != 1 {
		t.Fatalf("unexpected refresh message: %#v", msg)
	}

	if err := NewHubNotificationPublisher(hub).Publish(context.Background(), domain.PageRefreshNotification()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg := nextMessage(t, client); msg.Topic != domain.ChannelTopic(domain.RefreshChannel) {
		t.Fatalf("unexpected channel message: %s", msg.Topic)
	}
}
