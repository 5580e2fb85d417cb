package contract

import (
	"context"

	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/specification"
)

type ConversationTurnRepository interface {
	Create(ctx context.Context, turn *entity.ConversationTurn) error
	CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// NextTurnIndex returns the index the next appended turn should take.
	NextTurnIndex(ctx context.Context, sessionId uuid.UUID) (int, error)
}
