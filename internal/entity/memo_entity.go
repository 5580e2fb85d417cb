package entity

import (
	"time"

	"github.com/google/uuid"
)

// Memo is one persisted drafting iteration. Iterations are strictly
// monotonic per session; older rows are retained for audit but only the
// highest iteration is current.
type Memo struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Iteration int
	Title     string
	Accepted  bool
	Sections  []MemoSection
	CreatedAt time.Time
}

type MemoSection struct {
	Id                uuid.UUID
	MemoId            uuid.UUID
	SpecID            string
	Title             string
	Position          int
	SynthesizedText   string
	CompletenessState string
	Evidence          []MemoEvidence
}

type MemoEvidence struct {
	Id         uuid.UUID
	SectionId  uuid.UUID
	Position   int
	SourceType string
	DocumentID string
	Page       int
	Snippet    string
	Score      float64
}
