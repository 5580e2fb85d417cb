package corpus

import (
	"context"
	"fmt"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/pkg/embedding"
	"memo-drafting-be/pkg/retrieval"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Builder turns page text into embedded corpus chunks ready for persistence.
type Builder struct {
	embedder  embedding.EmbeddingProvider
	chunkSize int
	overlap   int
}

func NewBuilder(embedder embedding.EmbeddingProvider) *Builder {
	return &Builder{
		embedder:  embedder,
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
}

// Build chunks and embeds every page of a document. A single failed
// embedding fails the build; a partially indexed corpus would silently
// cripple retrieval.
func (b *Builder) Build(ctx context.Context, kind, key, documentID string, pages []PageText) ([]*entity.CorpusChunk, error) {
	var chunks []*entity.CorpusChunk
	index := 0
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, piece := range SplitText(page.Text, b.chunkSize, b.overlap) {
			resp, err := b.embedder.Generate(piece, embedding.TaskRetrievalDocument)
			if err != nil {
				return nil, fmt.Errorf("failed to embed chunk %d of %s: %w", index, documentID, err)
			}
			chunks = append(chunks, &entity.CorpusChunk{
				CorpusKind: kind,
				CorpusKey:  key,
				DocumentID: documentID,
				Page:       page.Page,
				ChunkIndex: index,
				Content:    piece,
				Embedding:  resp.Embedding.Values,
			})
			index++
		}
	}
	return chunks, nil
}

// BuildStandard indexes a guidance document into the shared standard corpus.
func (b *Builder) BuildStandard(ctx context.Context, standardID, documentID string, pages []PageText) ([]*entity.CorpusChunk, error) {
	return b.Build(ctx, retrieval.KindStandard, standardID, documentID, pages)
}

// BuildAgreement indexes an uploaded agreement into the session's corpus.
func (b *Builder) BuildAgreement(ctx context.Context, sessionKey, documentID string, pages []PageText) ([]*entity.CorpusChunk, error) {
	return b.Build(ctx, retrieval.KindAgreement, sessionKey, documentID, pages)
}
