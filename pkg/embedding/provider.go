package embedding

// Task type hints let providers that distinguish query vs document embeddings
// pick the right head. Providers that don't care ignore it.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

type EmbeddingValues struct {
	Values []float32 `json:"values"`
}

type EmbeddingResponse struct {
	Embedding EmbeddingValues `json:"embedding"`
}

// EmbeddingProvider generates a vector for a piece of text.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
