package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type CorpusChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CorpusKind string          `gorm:"type:varchar(20);not null;index:idx_corpus_chunks_kind_key"`
	CorpusKey  string          `gorm:"type:varchar(100);not null;index:idx_corpus_chunks_kind_key"`
	DocumentID string          `gorm:"type:varchar(255);not null"`
	Page       int             `gorm:"default:0"`
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering
	Content    string          `gorm:"type:text;not null"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text uses 768 dimensions
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (CorpusChunk) TableName() string {
	return "corpus_chunks"
}
