package memo

// SourceType tells where a piece of evidence came from.
type SourceType string

const (
	SourceStandard  SourceType = "standard"
	SourceAgreement SourceType = "agreement"
	SourceUser      SourceType = "user"
)

// Evidence is one retrievable passage (or user-supplied fact) cited in
// support of a memo statement. Immutable once created.
type Evidence struct {
	SourceType SourceType `json:"source_type"`
	DocumentID string     `json:"document_id"`
	Page       int        `json:"page,omitempty"` // 0 when the source has no page
	Snippet    string     `json:"snippet"`
	Score      float64    `json:"score"`
}

// Completeness is a section's coverage state relative to its query hints.
// Alias rather than a defined type so it flows into Section.CompletenessState
// and persisted models without conversion.
type Completeness = string

// Completeness states for a generated section.
const (
	CompletenessComplete   Completeness = "complete"
	CompletenessIncomplete Completeness = "incomplete"
	CompletenessUnknown    Completeness = "unknown"
)

// Section is one generated memo section. Regenerated wholesale on each
// iteration; prior versions are superseded, never mutated in place.
type Section struct {
	SpecID            string     `json:"spec_id"`
	Title             string     `json:"title"`
	SynthesizedText   string     `json:"synthesized_text"`
	Evidence          []Evidence `json:"evidence"`
	CompletenessState string     `json:"completeness_state"`
}

// Memo is one full drafting iteration.
type Memo struct {
	Iteration int       `json:"iteration"`
	Sections  []Section `json:"sections"`
	Accepted  bool      `json:"accepted"`
}
