package contract

import (
	"context"

	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/specification"
)

type MemoRepository interface {
	// Create persists the memo with its sections and evidence in one insert.
	Create(ctx context.Context, memo *entity.Memo) error
	Update(ctx context.Context, memo *entity.Memo) error
	// FindLatest returns the highest-iteration memo for a session with
	// sections and evidence preloaded, or nil when none exists.
	FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.Memo, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error)
	// MaxIteration returns 0 when the session has no memos yet.
	MaxIteration(ctx context.Context, sessionId uuid.UUID) (int, error)
}
