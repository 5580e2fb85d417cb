package retrieval

import "sort"

type locator struct {
	doc  string
	page int
}

// MergeTopN merges per-hint retrieval results for one corpus: deduplicates
// by (document, page), keeps the top n by score, and breaks score ties in
// favor of the earlier hint. Output order is score-descending and stable
// across calls with identical input.
func MergeTopN(byHint [][]Passage, n int) []Passage {
	best := make(map[locator]Passage)
	for hintIdx, passages := range byHint {
		for _, p := range passages {
			p.HintIndex = hintIdx
			key := locator{doc: p.DocumentID, page: p.Page}
			// Equal score keeps the earlier hint's passage: hints are
			// visited in declaration order.
			existing, seen := best[key]
			if !seen || p.Score > existing.Score {
				best[key] = p
			}
		}
	}

	merged := make([]Passage, 0, len(best))
	for _, p := range best {
		merged = append(merged, p)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		if merged[i].HintIndex != merged[j].HintIndex {
			return merged[i].HintIndex < merged[j].HintIndex
		}
		if merged[i].DocumentID != merged[j].DocumentID {
			return merged[i].DocumentID < merged[j].DocumentID
		}
		return merged[i].Page < merged[j].Page
	})

	if n > 0 && len(merged) > n {
		merged = merged[:n]
	}
	return merged
}
