package mapper

import (
	"github.com/pgvector/pgvector-go"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/model"
)

type CorpusChunkMapper struct{}

func NewCorpusChunkMapper() *CorpusChunkMapper {
	return &CorpusChunkMapper{}
}

func (m *CorpusChunkMapper) ToEntity(c *model.CorpusChunk) *entity.CorpusChunk {
	if c == nil {
		return nil
	}
	return &entity.CorpusChunk{
		Id:         c.Id,
		CorpusKind: c.CorpusKind,
		CorpusKey:  c.CorpusKey,
		DocumentID: c.DocumentID,
		Page:       c.Page,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
	}
}

func (m *CorpusChunkMapper) ToModel(c *entity.CorpusChunk) *model.CorpusChunk {
	if c == nil {
		return nil
	}
	return &model.CorpusChunk{
		Id:         c.Id,
		CorpusKind: c.CorpusKind,
		CorpusKey:  c.CorpusKey,
		DocumentID: c.DocumentID,
		Page:       c.Page,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
	}
}
