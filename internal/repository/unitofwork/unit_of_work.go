package unitofwork

import (
	"context"

	"memo-drafting-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MemoSessionRepository() contract.MemoSessionRepository
	ConversationTurnRepository() contract.ConversationTurnRepository
	FactRepository() contract.FactRepository
	MemoRepository() contract.MemoRepository
	CorpusChunkRepository() contract.CorpusChunkRepository
}
