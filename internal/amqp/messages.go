package amqp

import (
	"encoding/json"
	"time"
)

// PrefetchMessage asks the worker to warm the geodata cache for a
// destination that just became (or changed) a trip's vote winner. It
// carries names only; the worker re-resolves everything itself.
type PrefetchMessage struct {
	TripID      string    `json:"trip_id"`
	Destination string    `json:"destination"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewPrefetchMessage creates a prefetch message for a decided
// destination.
func NewPrefetchMessage(tripID, destination string) *PrefetchMessage {
	return &PrefetchMessage{
		TripID:      tripID,
		Destination: destination,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PrefetchMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PrefetchMessageFromJSON creates a message from JSON bytes
func PrefetchMessageFromJSON(data []byte) (*PrefetchMessage, error) {
	var msg PrefetchMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
