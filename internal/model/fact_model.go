package model

import (
	"time"

	"github.com/google/uuid"
)

type Fact struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_facts_session_field"`
	FieldName       string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_facts_session_field"`
	Value           string    `gorm:"type:text;not null"`
	Confidence      string    `gorm:"type:varchar(20);not null"`
	SourceTurnIndex int       `gorm:"default:0"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Fact) TableName() string {
	return "facts"
}
