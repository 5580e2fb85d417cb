package retrieval

import (
	"context"
	"fmt"

	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/embedding"
)

// PgVectorRetriever answers similarity queries by embedding the query and
// running cosine search over the corpus_chunks table.
type PgVectorRetriever struct {
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
}

func NewPgVectorRetriever(uowFactory unitofwork.RepositoryFactory, embedder embedding.EmbeddingProvider) *PgVectorRetriever {
	return &PgVectorRetriever{
		uowFactory: uowFactory,
		embedder:   embedder,
	}
}

func (r *PgVectorRetriever) Search(ctx context.Context, corpus Corpus, query string, topK int) ([]Passage, error) {
	resp, err := r.embedder.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.CorpusChunkRepository().SearchSimilarWithScore(ctx, corpus.Kind, corpus.Key, resp.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	passages := make([]Passage, 0, len(scored))
	for _, s := range scored {
		passages = append(passages, Passage{
			DocumentID: s.Chunk.DocumentID,
			Page:       s.Chunk.Page,
			Snippet:    s.Chunk.Content,
			Score:      s.Similarity,
		})
	}
	return passages, nil
}
