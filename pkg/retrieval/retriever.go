package retrieval

import "context"

// Corpus kinds. The standard corpus is shared and immutable after build; an
// agreement corpus belongs to exactly one session.
const (
	KindStandard  = "standard"
	KindAgreement = "agreement"
)

// Corpus identifies one retrievable passage collection.
type Corpus struct {
	Kind string // KindStandard | KindAgreement
	Key  string // standard id, or session id for agreements
}

// Passage is one ranked retrieval result with its source locator.
type Passage struct {
	DocumentID string
	Page       int
	Snippet    string
	Score      float64

	// HintIndex records which query hint produced the passage; MergeTopN
	// uses it as the tie-break.
	HintIndex int
}

// Retriever answers similarity queries against a corpus. Implementations
// must be safe for concurrent use across sessions.
type Retriever interface {
	Search(ctx context.Context, corpus Corpus, query string, topK int) ([]Passage, error)
}
