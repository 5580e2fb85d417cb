package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MEMO_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Drafting lifecycle event types.
const (
	TypeStandardSelected = "STANDARD_SELECTED"
	TypeAgreementIndexed = "AGREEMENT_INDEXED"
	TypeMemoGenerated    = "MEMO_GENERATED"
	TypeMemoAccepted     = "MEMO_ACCEPTED"
	TypeQuestionsSeeded  = "QUESTIONS_SEEDED"
)

func NewMemoGenerated(sessionID string, iteration int, forced bool) Event {
	return BaseEvent{
		Type: TypeMemoGenerated,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"iteration":  iteration,
			"forced":     forced,
		},
		OccurredAt: time.Now(),
	}
}

func NewMemoAccepted(sessionID string, iteration int) Event {
	return BaseEvent{
		Type: TypeMemoAccepted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"iteration":  iteration,
		},
		OccurredAt: time.Now(),
	}
}

func NewStandardSelected(sessionID, standardID string) Event {
	return BaseEvent{
		Type: TypeStandardSelected,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"standard_id": standardID,
		},
		OccurredAt: time.Now(),
	}
}

func NewAgreementIndexed(sessionID, documentID string, chunks int) Event {
	return BaseEvent{
		Type: TypeAgreementIndexed,
		Data: map[string]interface{}{
			"session_id":  sessionID,
			"document_id": documentID,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewQuestionsSeeded(sessionID string, count int) Event {
	return BaseEvent{
		Type: TypeQuestionsSeeded,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"count":      count,
		},
		OccurredAt: time.Now(),
	}
}
