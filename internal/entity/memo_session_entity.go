package entity

import (
	"time"

	"github.com/google/uuid"
)

// MemoSession is the persisted drafting session for one author. One session
// per user; it survives process restarts while the live in-memory state does
// not.
type MemoSession struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	StandardID       string
	State            string
	AgreementIndexed bool
	// FactsDirty is set when a merged fact batch warranted regeneration and
	// cleared when a memo is generated; generate_memo(force=false) uses it
	// to stay idempotent between chats.
	FactsDirty        bool
	AcceptedIteration int
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
