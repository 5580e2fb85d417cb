package mapper

import (
	"time"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/model"
)

type MemoSessionMapper struct{}

func NewMemoSessionMapper() *MemoSessionMapper {
	return &MemoSessionMapper{}
}

func (m *MemoSessionMapper) ToEntity(s *model.MemoSession) *entity.MemoSession {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.MemoSession{
		Id:                s.Id,
		UserId:            s.UserId,
		StandardID:        s.StandardID,
		State:             s.State,
		AgreementIndexed:  s.AgreementIndexed,
		FactsDirty:        s.FactsDirty,
		AcceptedIteration: s.AcceptedIteration,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *MemoSessionMapper) ToModel(s *entity.MemoSession) *model.MemoSession {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.MemoSession{
		Id:                s.Id,
		UserId:            s.UserId,
		StandardID:        s.StandardID,
		State:             s.State,
		AgreementIndexed:  s.AgreementIndexed,
		FactsDirty:        s.FactsDirty,
		AcceptedIteration: s.AcceptedIteration,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
