package contract

import (
	"context"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/specification"
)

// ScoredCorpusChunk wraps CorpusChunk with its similarity score
type ScoredCorpusChunk struct {
	Chunk      *entity.CorpusChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type CorpusChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByCorpus(ctx context.Context, kind, key string) error
	// SearchSimilarWithScore runs cosine similarity over one corpus and
	// returns the closest chunks with their scores.
	SearchSimilarWithScore(ctx context.Context, kind, key string, embedding []float32, limit int) ([]*ScoredCorpusChunk, error)
}
