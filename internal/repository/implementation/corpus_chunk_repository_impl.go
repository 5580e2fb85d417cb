package implementation

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/internal/repository/contract"
	"memo-drafting-be/internal/repository/specification"
)

type CorpusChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CorpusChunkMapper
}

func NewCorpusChunkRepository(db *gorm.DB) contract.CorpusChunkRepository {
	return &CorpusChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewCorpusChunkMapper(),
	}
}

func (r *CorpusChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CorpusChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.CorpusChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CorpusChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.CorpusChunk{}).Count(&count).Error
	return count, err
}

func (r *CorpusChunkRepositoryImpl) DeleteByCorpus(ctx context.Context, kind, key string) error {
	return r.db.WithContext(ctx).
		Where("corpus_kind = ? AND corpus_key = ?", kind, key).
		Delete(&model.CorpusChunk{}).Error
}

// SearchSimilarWithScore returns chunks with similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so
// 1 - (embedding <=> query_vector) recovers the similarity.
func (r *CorpusChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, kind, key string, embedding []float32, limit int) ([]*contract.ScoredCorpusChunk, error) {
	if limit <= 0 {
		limit = 3
	}

	type result struct {
		model.CorpusChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("corpus_chunks").
		Select("corpus_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("corpus_kind = ? AND corpus_key = ?", kind, key).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCorpusChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCorpusChunk{
			Chunk:      r.mapper.ToEntity(&res.CorpusChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
