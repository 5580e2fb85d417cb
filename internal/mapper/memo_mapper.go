package mapper

import (
	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/pkg/memo"
)

type MemoMapper struct{}

func NewMemoMapper() *MemoMapper {
	return &MemoMapper{}
}

func (m *MemoMapper) ToEntity(mm *model.Memo) *entity.Memo {
	if mm == nil {
		return nil
	}

	sections := make([]entity.MemoSection, 0, len(mm.Sections))
	for _, s := range mm.Sections {
		evidence := make([]entity.MemoEvidence, 0, len(s.Evidence))
		for _, e := range s.Evidence {
			evidence = append(evidence, entity.MemoEvidence{
				Id:         e.Id,
				SectionId:  e.SectionId,
				Position:   e.Position,
				SourceType: e.SourceType,
				DocumentID: e.DocumentID,
				Page:       e.Page,
				Snippet:    e.Snippet,
				Score:      e.Score,
			})
		}
		sections = append(sections, entity.MemoSection{
			Id:                s.Id,
			MemoId:            s.MemoId,
			SpecID:            s.SpecID,
			Title:             s.Title,
			Position:          s.Position,
			SynthesizedText:   s.SynthesizedText,
			CompletenessState: s.CompletenessState,
			Evidence:          evidence,
		})
	}

	return &entity.Memo{
		Id:        mm.Id,
		SessionId: mm.SessionId,
		Iteration: mm.Iteration,
		Title:     mm.Title,
		Accepted:  mm.Accepted,
		Sections:  sections,
		CreatedAt: mm.CreatedAt,
	}
}

func (m *MemoMapper) ToModel(me *entity.Memo) *model.Memo {
	if me == nil {
		return nil
	}

	sections := make([]model.MemoSection, 0, len(me.Sections))
	for _, s := range me.Sections {
		evidence := make([]model.MemoEvidence, 0, len(s.Evidence))
		for _, e := range s.Evidence {
			evidence = append(evidence, model.MemoEvidence{
				Id:         e.Id,
				SectionId:  e.SectionId,
				Position:   e.Position,
				SourceType: e.SourceType,
				DocumentID: e.DocumentID,
				Page:       e.Page,
				Snippet:    e.Snippet,
				Score:      e.Score,
			})
		}
		sections = append(sections, model.MemoSection{
			Id:                s.Id,
			MemoId:            s.MemoId,
			SpecID:            s.SpecID,
			Title:             s.Title,
			Position:          s.Position,
			SynthesizedText:   s.SynthesizedText,
			CompletenessState: s.CompletenessState,
			Evidence:          evidence,
		})
	}

	return &model.Memo{
		Id:        me.Id,
		SessionId: me.SessionId,
		Iteration: me.Iteration,
		Title:     me.Title,
		Accepted:  me.Accepted,
		Sections:  sections,
		CreatedAt: me.CreatedAt,
	}
}

// FromDraft turns an in-memory synthesized memo into a persistable entity.
// Row ids are left zero so the database assigns them on insert.
func (m *MemoMapper) FromDraft(sessionId uuid.UUID, title string, draft *memo.Memo) *entity.Memo {
	if draft == nil {
		return nil
	}

	sections := make([]entity.MemoSection, 0, len(draft.Sections))
	for i, s := range draft.Sections {
		evidence := make([]entity.MemoEvidence, 0, len(s.Evidence))
		for j, e := range s.Evidence {
			evidence = append(evidence, entity.MemoEvidence{
				Position:   j,
				SourceType: string(e.SourceType),
				DocumentID: e.DocumentID,
				Page:       e.Page,
				Snippet:    e.Snippet,
				Score:      e.Score,
			})
		}
		sections = append(sections, entity.MemoSection{
			SpecID:            s.SpecID,
			Title:             s.Title,
			Position:          i,
			SynthesizedText:   s.SynthesizedText,
			CompletenessState: string(s.CompletenessState),
			Evidence:          evidence,
		})
	}

	return &entity.Memo{
		SessionId: sessionId,
		Iteration: draft.Iteration,
		Title:     title,
		Accepted:  draft.Accepted,
		Sections:  sections,
	}
}

// ToDraft rebuilds the in-memory memo form from a persisted entity.
func (m *MemoMapper) ToDraft(me *entity.Memo) *memo.Memo {
	if me == nil {
		return nil
	}

	sections := make([]memo.Section, 0, len(me.Sections))
	for _, s := range me.Sections {
		evidence := make([]memo.Evidence, 0, len(s.Evidence))
		for _, e := range s.Evidence {
			evidence = append(evidence, memo.Evidence{
				SourceType: memo.SourceType(e.SourceType),
				DocumentID: e.DocumentID,
				Page:       e.Page,
				Snippet:    e.Snippet,
				Score:      e.Score,
			})
		}
		sections = append(sections, memo.Section{
			SpecID:            s.SpecID,
			Title:             s.Title,
			SynthesizedText:   s.SynthesizedText,
			Evidence:          evidence,
			CompletenessState: memo.Completeness(s.CompletenessState),
		})
	}

	return &memo.Memo{
		Iteration: me.Iteration,
		Sections:  sections,
		Accepted:  me.Accepted,
	}
}
