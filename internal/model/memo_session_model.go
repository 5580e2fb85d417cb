package model

import (
	"time"

	"github.com/google/uuid"
)

type MemoSession struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StandardID        string    `gorm:"type:varchar(50)"`
	State             string    `gorm:"type:varchar(50);not null"`
	AgreementIndexed  bool      `gorm:"default:false"`
	FactsDirty        bool      `gorm:"default:false"`
	AcceptedIteration int       `gorm:"default:0"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (MemoSession) TableName() string {
	return "memo_sessions"
}
