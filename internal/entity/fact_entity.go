package entity

import (
	"time"

	"github.com/google/uuid"

	"memo-drafting-be/pkg/memo/schema"
)

// Fact is one accumulated structured datum about the transaction, keyed by
// field name within a session. Facts describe the deal, not the standard, so
// they survive standard switches.
type Fact struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	FieldName       string
	Value           string
	Confidence      schema.Confidence
	SourceTurnIndex int
	UpdatedAt       time.Time
}
