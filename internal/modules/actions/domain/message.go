package domain

import "time"

// Message is the envelope exchanged with websocket clients and carried over Kafka.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// SessionID returns the session the message is addressed to, if any.
func (m *Message) SessionID() string {
	if m == nil || m.Metadata == nil {
		return ""
	}
	return m.Metadata["sessionId"]
}
