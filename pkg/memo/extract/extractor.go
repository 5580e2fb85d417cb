// Package extract pulls structured transaction facts out of free-form chat
// messages with an LLM. Extraction is best effort: a model failure or
// malformed reply yields an empty map, never an error, so the chat flow keeps
// going without the facts.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"memo-drafting-be/pkg/llm"
	"memo-drafting-be/pkg/memo/schema"
)

type Extractor struct {
	provider llm.LLMProvider
	timeout  time.Duration
}

func NewExtractor(provider llm.LLMProvider, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Extractor{
		provider: provider,
		timeout:  timeout,
	}
}

// Extract returns the facts stated in the message, keyed by field name.
// Unknown field names and unparseable replies are dropped silently.
func (e *Extractor) Extract(ctx context.Context, message string) schema.FactMap {
	if strings.TrimSpace(message) == "" {
		return schema.FactMap{}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.provider.Generate(ctx, buildPrompt(message), llm.WithTemperature(0.0))
	if err != nil {
		return schema.FactMap{}
	}

	return parseFacts(raw)
}

func buildPrompt(message string) string {
	var sb strings.Builder
	sb.WriteString("You extract structured facts about a business acquisition from an analyst's message.\n")
	sb.WriteString("Only report facts the message actually states. Do not guess or infer.\n\n")
	sb.WriteString("Known fields:\n")
	for _, f := range schema.Fields() {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s\n", f.Name, f.Kind, f.Description))
	}
	sb.WriteString("\nRespond with ONLY a JSON object. Each key is a field name from the list above; ")
	sb.WriteString("each value is an object {\"value\": \"...\", \"confidence\": \"low|medium|high\"}.\n")
	sb.WriteString("Use \"high\" when the message states the fact outright, \"medium\" when it is strongly implied, ")
	sb.WriteString("\"low\" when it is tentative. Return {} if the message contains no facts.\n\n")
	sb.WriteString("Message:\n")
	sb.WriteString(message)
	return sb.String()
}

// extractJSON strips any prose or code fences the model wraps around its
// JSON object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return raw[start : end+1]
}

func parseFacts(raw string) schema.FactMap {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return schema.FactMap{}
	}

	var parsed map[string]struct {
		Value      string `json:"value"`
		Confidence string `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return schema.FactMap{}
	}

	out := schema.FactMap{}
	for name, v := range parsed {
		if !schema.IsKnownField(name) {
			continue
		}
		if strings.TrimSpace(v.Value) == "" {
			continue
		}
		out[name] = schema.Value{
			Value:      strings.TrimSpace(v.Value),
			Confidence: schema.Normalize(v.Confidence),
		}
	}
	return out
}
