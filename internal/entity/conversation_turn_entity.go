package entity

import (
	"time"

	"github.com/google/uuid"

	"memo-drafting-be/pkg/memo/schema"
)

// Conversation roles.
const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "assistant"
)

// ConversationTurn is one append-only chat message, user or assistant, with
// whatever facts were extracted from it (empty for assistant turns and
// chit-chat).
type ConversationTurn struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	TurnIndex      int
	Role           string
	Text           string
	ExtractedFacts schema.FactMap
	CreatedAt      time.Time
}
