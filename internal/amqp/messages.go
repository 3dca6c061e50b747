package amqp

import (
	"encoding/json"
	"time"

	"expensetracker/internal/tracker"
)

// ChangeMessage announces that the persisted collection changed. Consumers
// reload the full collection from storage instead of replaying deltas.
type ChangeMessage struct {
	Op        string    `json:"op"`
	ID        int64     `json:"id"`
	Count     int       `json:"count"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(ev tracker.ChangeEvent) *ChangeMessage {
	return &ChangeMessage{
		Op:        string(ev.Op),
		ID:        ev.ID,
		Count:     ev.Summary.Count,
		Total:     ev.Summary.Total,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON creates a message from JSON bytes
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
