package dto

import (
	"time"

	"memo-drafting-be/pkg/memo/schema"
)

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	TurnIndex       int            `json:"turn_index"`
	ExtractedFacts  schema.FactMap `json:"extracted_facts"`
	AppliedFields   []string       `json:"applied_fields"`
	Regenerated     bool           `json:"regenerated"`
	MemoIteration   int            `json:"memo_iteration"`
	Reply           string         `json:"reply,omitempty"`
	SeededQuestions []string       `json:"seeded_questions,omitempty"`
}

// EvaluateRequest carries a hypothetical message for the pure evaluation
// endpoint; nothing is persisted.
type EvaluateRequest struct {
	Message string `json:"message" validate:"required"`
}

type EvaluateResponse struct {
	ExtractedFacts  schema.FactMap `json:"extracted_facts"`
	WouldRegenerate bool           `json:"would_regenerate"`
	NewFields       []string       `json:"new_fields"`
}

type ChatTurnResponse struct {
	TurnIndex      int            `json:"turn_index"`
	Role           string         `json:"role"`
	Text           string         `json:"text"`
	ExtractedFacts schema.FactMap `json:"extracted_facts,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
