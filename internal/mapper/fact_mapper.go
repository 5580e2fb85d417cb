package mapper

import (
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/pkg/memo/schema"
)

type FactMapper struct{}

func NewFactMapper() *FactMapper {
	return &FactMapper{}
}

func (m *FactMapper) ToEntity(f *model.Fact) *entity.Fact {
	if f == nil {
		return nil
	}
	return &entity.Fact{
		Id:              f.Id,
		SessionId:       f.SessionId,
		FieldName:       f.FieldName,
		Value:           f.Value,
		Confidence:      schema.Confidence(f.Confidence),
		SourceTurnIndex: f.SourceTurnIndex,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (m *FactMapper) ToModel(f *entity.Fact) *model.Fact {
	if f == nil {
		return nil
	}
	return &model.Fact{
		Id:              f.Id,
		SessionId:       f.SessionId,
		FieldName:       f.FieldName,
		Value:           f.Value,
		Confidence:      string(f.Confidence),
		SourceTurnIndex: f.SourceTurnIndex,
		UpdatedAt:       f.UpdatedAt,
	}
}

// ToFactMap collapses persisted fact rows into the in-memory accumulated map.
func (m *FactMapper) ToFactMap(facts []entity.Fact) schema.FactMap {
	out := schema.FactMap{}
	for _, f := range facts {
		out[f.FieldName] = schema.Value{Value: f.Value, Confidence: f.Confidence}
	}
	return out
}
