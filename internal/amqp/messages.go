package amqp

import (
	"encoding/json"
	"time"
)

// Event actions for the expense lifecycle. There is no update action; the
// record model is create-then-delete only.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// ExpenseEvent is published after a successful store mutation and consumed
// by the audit worker. It carries enough to write an audit row without a
// store round trip.
type ExpenseEvent struct {
	Action      string    `json:"action"`
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	AmountCents int64     `json:"amountCents,omitempty"`
	Category    string    `json:"category,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewCreatedEvent(id, title string, amountCents int64, category string) *ExpenseEvent {
	return &ExpenseEvent{
		Action:      ActionCreated,
		ID:          id,
		Title:       title,
		AmountCents: amountCents,
		Category:    category,
		OccurredAt:  time.Now(),
	}
}

func NewDeletedEvent(id string) *ExpenseEvent {
	return &ExpenseEvent{
		Action:     ActionDeleted,
		ID:         id,
		OccurredAt: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ExpenseEventFromJSON creates an event from JSON bytes
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var ev ExpenseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
