package model

import (
	"time"

	"github.com/google/uuid"
)

type Memo struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_memos_session_iteration"`
	Iteration int       `gorm:"not null;uniqueIndex:idx_memos_session_iteration"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Accepted  bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	Sections []MemoSection `gorm:"foreignKey:MemoId"`
}

func (Memo) TableName() string {
	return "memos"
}

type MemoSection struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemoId            uuid.UUID `gorm:"type:uuid;not null;index"`
	SpecID            string    `gorm:"type:varchar(100);not null"`
	Title             string    `gorm:"type:varchar(255);not null"`
	Position          int       `gorm:"not null"`
	SynthesizedText   string    `gorm:"type:text"`
	CompletenessState string    `gorm:"type:varchar(20);not null"`

	Evidence []MemoEvidence `gorm:"foreignKey:SectionId"`
}

func (MemoSection) TableName() string {
	return "memo_sections"
}

type MemoEvidence struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SectionId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position   int       `gorm:"not null"`
	SourceType string    `gorm:"type:varchar(20);not null"`
	DocumentID string    `gorm:"type:varchar(255);not null"`
	Page       int       `gorm:"default:0"`
	Snippet    string    `gorm:"type:text"`
	Score      float64   `gorm:"default:0"`
}

func (MemoEvidence) TableName() string {
	return "memo_evidence"
}
