package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters rows belonging to a drafting session
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// ByUserID filters by the owning user
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByCorpus filters corpus chunks by kind and key
type ByCorpus struct {
	Kind string
	Key  string
}

func (s ByCorpus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("corpus_kind = ? AND corpus_key = ?", s.Kind, s.Key)
}

// ByIteration filters memos by iteration number
type ByIteration struct {
	Iteration int
}

func (s ByIteration) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("iteration = ?", s.Iteration)
}
