// Package synthesis drafts one memo section at a time from retrieved
// guidance, agreement passages, and accumulated conversation facts.
// Synthesis degrades instead of failing: retrieval errors shrink the
// evidence set and an LLM failure falls back to deterministic prose.
package synthesis

import (
	"context"
	"time"

	"memo-drafting-be/pkg/llm"
	"memo-drafting-be/pkg/memo"
	"memo-drafting-be/pkg/memo/schema"
	"memo-drafting-be/pkg/memo/template"
	"memo-drafting-be/pkg/retrieval"
)

type Config struct {
	StandardTopK  int // passages per hint from the standard corpus
	AgreementTopK int // passages per hint from the agreement corpus
	MergedTopN    int // passages kept per corpus after merging hints
	Timeout       time.Duration
}

func DefaultConfig() Config {
	return Config{
		StandardTopK:  2,
		AgreementTopK: 3,
		MergedTopN:    4,
		Timeout:       60 * time.Second,
	}
}

type Synthesizer struct {
	retriever retrieval.Retriever
	provider  llm.LLMProvider
	cfg       Config
}

func NewSynthesizer(retriever retrieval.Retriever, provider llm.LLMProvider, cfg Config) *Synthesizer {
	def := DefaultConfig()
	if cfg.StandardTopK <= 0 {
		cfg.StandardTopK = def.StandardTopK
	}
	if cfg.AgreementTopK <= 0 {
		cfg.AgreementTopK = def.AgreementTopK
	}
	if cfg.MergedTopN <= 0 {
		cfg.MergedTopN = def.MergedTopN
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	return &Synthesizer{
		retriever: retriever,
		provider:  provider,
		cfg:       cfg,
	}
}

// Input carries everything one section draft needs.
type Input struct {
	Spec             template.SectionSpec
	StandardID       string
	AgreementKey     string // empty when no agreement has been indexed
	AgreementIndexed bool
	Facts            schema.FactMap
}

// Synthesize drafts the section. It never returns an error; the section's
// evidence list reflects whatever retrieval succeeded, and the completeness
// state is left for the caller to assess.
func (s *Synthesizer) Synthesize(ctx context.Context, in Input) memo.Section {
	standard := s.retrievePerHint(ctx, retrieval.Corpus{
		Kind: retrieval.KindStandard,
		Key:  in.StandardID,
	}, in.Spec, s.cfg.StandardTopK, true)

	var agreement []retrieval.Passage
	if in.AgreementIndexed {
		agreement = s.retrievePerHint(ctx, retrieval.Corpus{
			Kind: retrieval.KindAgreement,
			Key:  in.AgreementKey,
		}, in.Spec, s.cfg.AgreementTopK, false)
	}

	evidence := buildEvidence(standard, agreement, in.Spec.ID, in.Facts)

	text := s.compose(ctx, in, standard, agreement)

	return memo.Section{
		SpecID:            in.Spec.ID,
		Title:             in.Spec.Title,
		SynthesizedText:   text,
		Evidence:          evidence,
		CompletenessState: memo.CompletenessUnknown,
	}
}

// retrievePerHint queries the corpus once per hint and merges the results.
// Standard queries are prefixed with the section's topic so general hints
// land near the right guidance.
func (s *Synthesizer) retrievePerHint(ctx context.Context, corpus retrieval.Corpus, spec template.SectionSpec, topK int, withTopic bool) []retrieval.Passage {
	byHint := make([][]retrieval.Passage, 0, len(spec.QueryHints))
	for _, hint := range spec.QueryHints {
		query := hint
		if withTopic && spec.StandardTopic != "" {
			query = spec.StandardTopic + ": " + hint
		}
		passages, err := s.retriever.Search(ctx, corpus, query, topK)
		if err != nil {
			continue
		}
		byHint = append(byHint, passages)
	}
	return retrieval.MergeTopN(byHint, s.cfg.MergedTopN)
}

// buildEvidence assembles the section's provenance: retrieved standard and
// agreement passages first, then the conversation facts relevant to the
// section.
func buildEvidence(standard, agreement []retrieval.Passage, sectionID string, facts schema.FactMap) []memo.Evidence {
	out := make([]memo.Evidence, 0, len(standard)+len(agreement))
	for _, p := range standard {
		out = append(out, memo.Evidence{
			SourceType: memo.SourceStandard,
			DocumentID: p.DocumentID,
			Page:       p.Page,
			Snippet:    p.Snippet,
			Score:      p.Score,
		})
	}
	for _, p := range agreement {
		out = append(out, memo.Evidence{
			SourceType: memo.SourceAgreement,
			DocumentID: p.DocumentID,
			Page:       p.Page,
			Snippet:    p.Snippet,
			Score:      p.Score,
		})
	}
	for _, field := range schema.SectionFields(sectionID) {
		v, ok := facts[field]
		if !ok {
			continue
		}
		out = append(out, memo.Evidence{
			SourceType: memo.SourceUser,
			DocumentID: "conversation",
			Snippet:    field + ": " + v.Value,
		})
	}
	return out
}

func (s *Synthesizer) compose(ctx context.Context, in Input, standard, agreement []retrieval.Passage) string {
	prompt := buildSectionPrompt(in, standard, agreement)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.provider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil || text == "" {
		return fallbackText(in, standard, agreement)
	}
	return text
}
