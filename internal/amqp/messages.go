package amqp

import (
	"encoding/json"
	"time"
)

// Operations carried by an InstrumentChangedMessage.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// InstrumentChangedMessage tells the projection worker that an instrument was
// created, updated or deleted. It carries only the ID and operation; the
// worker reloads the portfolio from storage before recomputing.
type InstrumentChangedMessage struct {
	ID        int64     `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewInstrumentChangedMessage(id int64, op string) *InstrumentChangedMessage {
	return &InstrumentChangedMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *InstrumentChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func InstrumentChangedMessageFromJSON(data []byte) (*InstrumentChangedMessage, error) {
	var msg InstrumentChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
