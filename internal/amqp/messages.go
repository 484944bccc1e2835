package amqp

import (
	"encoding/json"
	"time"
)

// Event types published for repository mutations.
const (
	TypeTripCreated    = "trip.created"
	TypeTripUpdated    = "trip.updated"
	TypeTripDeleted    = "trip.deleted"
	TypeExpenseAdded   = "expense.added"
	TypeExpenseDeleted = "expense.deleted"
)

// Message is the wire format for mutation events.
type Message struct {
	Type        string    `json:"type"`
	OccurredAt  time.Time `json:"occurredAt"`
	TripID      string    `json:"tripId,omitempty"`
	ExpenseID   string    `json:"expenseId,omitempty"`
	AmountCents int64     `json:"amountCents,omitempty"`
}

func NewMessage(eventType, tripID, expenseID string, amountCents int64) *Message {
	return &Message{
		Type:        eventType,
		OccurredAt:  time.Now().UTC(),
		TripID:      tripID,
		ExpenseID:   expenseID,
		AmountCents: amountCents,
	}
}

func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MessageFromJSON(data []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
