package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/pkg/memo/schema"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(t *model.ConversationTurn) *entity.ConversationTurn {
	if t == nil {
		return nil
	}

	facts := schema.FactMap{}
	if len(t.ExtractedFacts) > 0 {
		// Rows written before extraction existed hold no payload; an
		// unreadable payload degrades to an empty map rather than failing
		// the whole history read.
		_ = json.Unmarshal(t.ExtractedFacts, &facts)
	}

	return &entity.ConversationTurn{
		Id:             t.Id,
		SessionId:      t.SessionId,
		TurnIndex:      t.TurnIndex,
		Role:           t.Role,
		Text:           t.Text,
		ExtractedFacts: facts,
		CreatedAt:      t.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(t *entity.ConversationTurn) *model.ConversationTurn {
	if t == nil {
		return nil
	}

	var facts datatypes.JSON
	if len(t.ExtractedFacts) > 0 {
		raw, err := json.Marshal(t.ExtractedFacts)
		if err == nil {
			facts = datatypes.JSON(raw)
		}
	}

	return &model.ConversationTurn{
		Id:             t.Id,
		SessionId:      t.SessionId,
		TurnIndex:      t.TurnIndex,
		Role:           t.Role,
		Text:           t.Text,
		ExtractedFacts: facts,
		CreatedAt:      t.CreatedAt,
	}
}
