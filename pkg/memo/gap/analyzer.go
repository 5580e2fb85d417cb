// Package gap derives follow-up questions from sections whose evidence does
// not cover their query hints. The heuristic is deterministic on purpose so
// seeded questions are reproducible for a given memo.
package gap

import (
	"fmt"
	"strings"

	"memo-drafting-be/pkg/memo"
	"memo-drafting-be/pkg/memo/template"
)

type Config struct {
	// CompletenessFraction is the share of a section's query hints that
	// must be addressed by evidence before the section counts as complete.
	CompletenessFraction float64
}

func DefaultConfig() Config {
	return Config{
		CompletenessFraction: 0.5,
	}
}

type Analyzer struct {
	cfg Config
}

func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.CompletenessFraction <= 0 || cfg.CompletenessFraction > 1 {
		cfg.CompletenessFraction = DefaultConfig().CompletenessFraction
	}
	return &Analyzer{cfg: cfg}
}

// words too common to signal that evidence addresses a hint
var stopwords = map[string]struct{}{
	"what": {}, "when": {}, "which": {}, "where": {}, "whether": {},
	"does": {}, "have": {}, "been": {}, "were": {}, "with": {}, "will": {},
	"that": {}, "this": {}, "their": {}, "there": {}, "them": {}, "then": {},
	"from": {}, "into": {}, "under": {}, "over": {}, "about": {},
	"identify": {}, "describe": {}, "state": {}, "list": {}, "provide": {},
	"agreement": {}, "transaction": {}, "acquisition": {}, "section": {},
}

// keywords lowercases the text and keeps distinct words of four letters or
// more that are not stopwords.
func keywords(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, w := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	}) {
		if len(w) < 4 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// hintAddressed reports whether the section's prose or any evidence snippet
// shares a keyword with the hint. Prose counts because a preparer fact can
// answer a hint without producing a retrieved passage.
func hintAddressed(hint string, section memo.Section) bool {
	kws := keywords(hint)
	if len(kws) == 0 {
		return false
	}
	text := strings.ToLower(section.SynthesizedText)
	for _, kw := range kws {
		if strings.Contains(text, kw) {
			return true
		}
	}
	for _, ev := range section.Evidence {
		snippet := strings.ToLower(ev.Snippet)
		for _, kw := range kws {
			if strings.Contains(snippet, kw) {
				return true
			}
		}
	}
	return false
}

// Assess returns the completeness state for a synthesized section given its
// declared query hints. A section with no hints cannot be assessed.
func (a *Analyzer) Assess(section memo.Section, spec template.SectionSpec) memo.Completeness {
	if len(spec.QueryHints) == 0 {
		return memo.CompletenessUnknown
	}
	if len(section.Evidence) == 0 {
		return memo.CompletenessIncomplete
	}
	addressed := 0
	for _, hint := range spec.QueryHints {
		if hintAddressed(hint, section) {
			addressed++
		}
	}
	if float64(addressed) < a.cfg.CompletenessFraction*float64(len(spec.QueryHints)) {
		return memo.CompletenessIncomplete
	}
	return memo.CompletenessComplete
}

// Questions turns the unaddressed hints of an incomplete section into
// user-facing follow-up questions, in hint declaration order, skipping any
// question already open.
func (a *Analyzer) Questions(section memo.Section, spec template.SectionSpec, open []string) []string {
	if section.CompletenessState == memo.CompletenessComplete {
		return nil
	}

	openSet := make(map[string]struct{}, len(open))
	for _, q := range open {
		openSet[strings.ToLower(strings.TrimSpace(q))] = struct{}{}
	}

	var out []string
	for _, hint := range spec.QueryHints {
		if hintAddressed(hint, section) {
			continue
		}
		q := questionFor(spec.Title, hint)
		if _, dup := openSet[strings.ToLower(q)]; dup {
			continue
		}
		openSet[strings.ToLower(q)] = struct{}{}
		out = append(out, q)
	}
	return out
}

func questionFor(sectionTitle, hint string) string {
	h := strings.TrimSpace(hint)
	h = strings.TrimSuffix(h, "?")
	h = strings.TrimSuffix(h, ".")
	return fmt.Sprintf("For the %s section: can you provide details on \"%s\"?", sectionTitle, h)
}
