package domain

import "time"

// Metadata carries routing hints on a Message (quoteId, sessionId, reason, ...).
type Metadata map[string]string

// Message is the frame exchanged between kafka change events and websocket clients.
type Message struct {
	Topic      string    `json:"topic"`
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	ResourceID string    `json:"resourceId,omitempty"`
	Metadata   Metadata  `json:"metadata,omitempty"`
	Data       any       `json:"data,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
