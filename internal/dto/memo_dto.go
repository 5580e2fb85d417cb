package dto

import "time"

type GenerateMemoRequest struct {
	Force bool `json:"force"`
}

type EvidenceDTO struct {
	SourceType string  `json:"source_type"`
	DocumentID string  `json:"document_id"`
	Page       int     `json:"page,omitempty"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score,omitempty"`
}

type SectionDTO struct {
	SpecID            string        `json:"spec_id"`
	Title             string        `json:"title"`
	SynthesizedText   string        `json:"synthesized_text"`
	CompletenessState string        `json:"completeness_state"`
	Evidence          []EvidenceDTO `json:"evidence"`
}

type MemoResponse struct {
	Iteration int          `json:"iteration"`
	Title     string       `json:"title"`
	Accepted  bool         `json:"accepted"`
	Sections  []SectionDTO `json:"sections"`
	CreatedAt time.Time    `json:"created_at"`
}

type MemoSummaryResponse struct {
	Iteration int       `json:"iteration"`
	Title     string    `json:"title"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
}

type GenerateMemoResponse struct {
	Generated bool          `json:"generated"`
	Reason    string        `json:"reason,omitempty"`
	Memo      *MemoResponse `json:"memo,omitempty"`
}

type SeedQuestionsResponse struct {
	Questions []string `json:"questions"`
}

type AcceptMemoResponse struct {
	Iteration int `json:"iteration"`
}
