package websocket

import (
	"encoding/json"
	"log"
)

const (
	EventMessageCreated = "message_created"
	EventChatUpdated    = "chat_updated"
	EventSavedChanged   = "saved_changed"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// BroadcastEvent marshals and queues a typed event. Marshal failures are
// logged and dropped; push is best-effort.
func (m *Manager) BroadcastEvent(eventType string, payload interface{}) {
	raw, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	m.Broadcast(raw)
}
