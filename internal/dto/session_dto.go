package dto

import (
	"github.com/google/uuid"

	"memo-drafting-be/pkg/memo/schema"
)

type SelectStandardRequest struct {
	StandardID string `json:"standard_id" validate:"required"`
}

type SessionSnapshotResponse struct {
	SessionId          uuid.UUID      `json:"session_id"`
	State              string         `json:"state"`
	StandardID         string         `json:"standard_id,omitempty"`
	AgreementIndexed   bool           `json:"agreement_indexed"`
	MemoIteration      int            `json:"memo_iteration"`
	AcceptedIteration  int            `json:"accepted_iteration,omitempty"`
	FactsDirty         bool           `json:"facts_dirty"`
	Facts              schema.FactMap `json:"facts"`
	AvailableStandards []string       `json:"available_standards"`
}
