package contract

import (
	"context"

	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/specification"
)

type MemoSessionRepository interface {
	Create(ctx context.Context, session *entity.MemoSession) error
	Update(ctx context.Context, session *entity.MemoSession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MemoSession, error)
}
