package contract

import (
	"context"

	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/specification"
)

type FactRepository interface {
	// Upsert inserts or replaces the row keyed by (session_id, field_name).
	Upsert(ctx context.Context, fact *entity.Fact) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fact, error)
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
