package store

import "sync"

// Session is the live drafting state for one author, held in memory between
// requests. The authoritative projection lives in Postgres; this copy carries
// what the engine needs to serialize work and answer cheap state questions
// without a round trip.
type Session struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	State  string `json:"state"`

	StandardID        string `json:"standard_id"`
	AgreementIndexed  bool   `json:"agreement_indexed"`
	FactsDirty        bool   `json:"facts_dirty"`
	MemoIteration     int    `json:"memo_iteration"`
	AcceptedIteration int    `json:"accepted_iteration"`

	// mu serializes chat turns and regeneration for this session. A
	// regeneration mutates facts and memo together and must not interleave
	// with a concurrent turn for the same session.
	mu sync.Mutex
}

// Lock acquires the per-session serialization lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session serialization lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Drafting states, in forward order. QUESTIONS_SEEDED and chat turns cycle
// until the memo is accepted.
const (
	StateNoStandard      = "NO_STANDARD"
	StateStandardSet     = "STANDARD_SET"
	StateAgreementReady  = "AGREEMENT_READY"
	StateMemoDrafted     = "MEMO_DRAFTED"
	StateQuestionsSeeded = "QUESTIONS_SEEDED"
	StateMemoAccepted    = "MEMO_ACCEPTED"
)
