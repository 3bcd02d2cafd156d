package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
	"dsfrGateway/internal/shared/session"
)

type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	acks    map[string]pendingAck
	mu      sync.RWMutex
}

type pendingAck struct {
	sessionID string
	done      chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
		acks:    make(map[string]pendingAck),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.sessionID]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.sessionID] = c
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	slog.Info("ws client registered", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if current, ok := h.clients[c.sessionID]; ok && current == c {
		delete(h.clients, c.sessionID)
		for id, ack := range h.acks {
			if ack.sessionID == c.sessionID {
				close(ack.done)
				delete(h.acks, id)
			}
		}
	}
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

// Broadcast sends msg to the clients subscribed to its topic. A sessionId or userId metadata
// entry restricts delivery to matching clients.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	clientsMap := h.topics[msg.Topic]
	clients := make([]*Client, 0, len(clientsMap))
	for c := range clientsMap {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	targetUser := ""
	targetSession := ""
	if msg.Metadata != nil {
		targetUser = strings.TrimSpace(msg.Metadata["userId"])
		targetSession = strings.TrimSpace(msg.Metadata["sessionId"])
	}

	for _, c := range clients {
		if targetUser != "" && c.userID != targetUser {
			continue
		}
		if targetSession != "" && c.sessionID != targetSession {
			continue
		}
		c.enqueue(data)
	}
}

// SendToSession delivers msg to the client of the identity's session regardless of its
// subscriptions. A client owned by another user is never targeted. It reports whether a client
// received the message.
func (h *Hub) SendToSession(identity session.Identity, msg *domain.Message) bool {
	c, ok := h.sessionClient(identity)
	if !ok {
		return false
	}
	c.SendDomainMessage(msg)
	return true
}

// Connected reports whether a client of the identity is attached for its session.
func (h *Hub) Connected(identity session.Identity) bool {
	_, ok := h.sessionClient(identity)
	return ok
}

func (h *Hub) sessionClient(identity session.Identity) (*Client, bool) {
	sessionID := strings.TrimSpace(identity.SessionID)
	if sessionID == "" {
		return nil, false
	}
	h.mu.RLock()
	c, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if userID := strings.TrimSpace(identity.UserID); userID != "" && c.userID != "" && c.userID != userID {
		return nil, false
	}
	return c, true
}

// expectAck registers an alert awaiting acknowledgement. The returned channel is closed on
// acknowledgement or when the session disconnects; cancel drops the registration.
func (h *Hub) expectAck(sessionID, alertID string) (<-chan struct{}, func()) {
	done := make(chan struct{})
	h.mu.Lock()
	if _, ok := h.clients[sessionID]; !ok {
		h.mu.Unlock()
		close(done)
		return done, func() {}
	}
	h.acks[alertID] = pendingAck{sessionID: sessionID, done: done}
	h.mu.Unlock()
	return done, func() {
		h.mu.Lock()
		if ack, ok := h.acks[alertID]; ok && ack.done == done {
			delete(h.acks, alertID)
		}
		h.mu.Unlock()
	}
}

// acknowledge resolves a pending alert of the session. Unknown ids are ignored.
func (h *Hub) acknowledge(sessionID, alertID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	ack, ok := h.acks[alertID]
	if !ok || ack.sessionID != sessionID {
		return false
	}
	close(ack.done)
	delete(h.acks, alertID)
	return true
}

func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.Any("topics", topics))
}
