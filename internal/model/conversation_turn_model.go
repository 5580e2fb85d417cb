package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ConversationTurn struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	TurnIndex      int            `gorm:"not null"`
	Role           string         `gorm:"type:varchar(50);not null"`
	Text           string         `gorm:"type:text;not null"`
	ExtractedFacts datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (ConversationTurn) TableName() string {
	return "conversation_turns"
}
