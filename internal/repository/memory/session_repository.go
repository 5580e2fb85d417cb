package memory

import (
	"github.com/patrickmn/go-cache"

	"memo-drafting-be/pkg/store"
)

// SessionRepository keeps live drafting sessions in memory, keyed by user id
// since each user owns exactly one session. Each entry carries the
// per-session mutex that serializes chat and generation, so lookups for the
// same user must return the same pointer until eviction. Entries never
// expire on their own; they leave only through Delete at logout, otherwise
// a timed eviction could hand two in-flight requests different mutexes.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.UserID, session, cache.NoExpiration)
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
