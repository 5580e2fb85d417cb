package policy

import (
	"memo-drafting-be/pkg/memo/schema"
)

// ShouldRegenerate decides whether a batch of newly extracted facts warrants
// re-synthesizing the memo.
//
// True iff newFacts is non-empty AND it either introduces a field not yet in
// accumulated, or overwrites an existing field with a strictly higher
// confidence tier. Pure chit-chat (empty extraction) never triggers.
//
// Deterministic and side-effect free so the evaluate endpoint can call it
// without touching session state.
func ShouldRegenerate(newFacts schema.FactMap, accumulated schema.FactMap) bool {
	if len(newFacts) == 0 {
		return false
	}

	for name, incoming := range newFacts {
		existing, ok := accumulated[name]
		if !ok {
			return true
		}
		if incoming.Confidence.Rank() > existing.Confidence.Rank() {
			return true
		}
	}

	return false
}
