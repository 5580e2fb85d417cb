package memory

import (
	"testing"

	"memo-drafting-be/pkg/store"
)

func TestGetReturnsSamePointerUntilDelete(t *testing.T) {
	repo := NewSessionRepository()
	session := &store.Session{ID: "s1", UserID: "u1"}
	repo.Save(session)

	// The entry carries the per-session mutex, so repeated lookups must hand
	// back the identical pointer.
	for i := 0; i < 3; i++ {
		got, ok := repo.Get("u1")
		if !ok {
			t.Fatalf("Get() miss on lookup %d", i)
		}
		if got != session {
			t.Fatalf("Get() returned a different pointer on lookup %d", i)
		}
	}

	repo.Delete("u1")
	if _, ok := repo.Get("u1"); ok {
		t.Error("Get() after Delete() still found the session")
	}
}

func TestGetMissesUnknownUser(t *testing.T) {
	repo := NewSessionRepository()
	if got, ok := repo.Get("nobody"); ok || got != nil {
		t.Errorf("Get() = (%v, %v), want miss", got, ok)
	}
}
