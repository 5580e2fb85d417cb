package entity

import (
	"time"

	"github.com/google/uuid"
)

// CorpusChunk is one embedded passage of a source document. Standard chunks
// are shared read-only across sessions; agreement chunks belong to the
// session that uploaded the agreement.
type CorpusChunk struct {
	Id         uuid.UUID
	CorpusKind string // "standard" | "agreement"
	CorpusKey  string // standard id, or session id for agreements
	DocumentID string
	Page       int
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}
