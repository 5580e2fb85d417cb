package factory

import (
	"fmt"

	"memo-drafting-be/pkg/llm"
	"memo-drafting-be/pkg/llm/ollama"
	"memo-drafting-be/pkg/llm/openai"
)

// NewLLMProvider builds the configured LLM backend.
func NewLLMProvider(providerName, modelName, ollamaBaseURL, openAIBaseURL, openAIKey string) (llm.LLMProvider, error) {
	switch providerName {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(openAIBaseURL, openAIKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", providerName)
	}
}
