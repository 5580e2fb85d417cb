package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/contract"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/llm"
	"memo-drafting-be/pkg/retrieval"
)

// In-memory repository fakes. They ignore transactional boundaries and only
// honor the specifications the services actually use.

type fakeStore struct {
	users    []*entity.User
	sessions []*entity.MemoSession
	turns    []*entity.ConversationTurn
	facts    []*entity.Fact
	memos    []*entity.Memo
	chunks   []*entity.CorpusChunk
}

func newFakeStore() *fakeStore {
	return &fakeStore{}
}

func (s *fakeStore) factory() unitofwork.RepositoryFactory {
	return &fakeFactory{store: s}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUow) MemoSessionRepository() contract.MemoSessionRepository {
	return &fakeMemoSessionRepo{store: u.store}
}

func (u *fakeUow) ConversationTurnRepository() contract.ConversationTurnRepository {
	return &fakeTurnRepo{store: u.store}
}

func (u *fakeUow) FactRepository() contract.FactRepository {
	return &fakeFactRepo{store: u.store}
}

func (u *fakeUow) MemoRepository() contract.MemoRepository {
	return &fakeMemoRepo{store: u.store}
}

func (u *fakeUow) CorpusChunkRepository() contract.CorpusChunkRepository {
	return &fakeChunkRepo{store: u.store}
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if matchesUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return r.store.users, nil
}

func matchesUser(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != sp.Email {
				return false
			}
		}
	}
	return true
}

type fakeMemoSessionRepo struct {
	store *fakeStore
}

func (r *fakeMemoSessionRepo) Create(ctx context.Context, session *entity.MemoSession) error {
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeMemoSessionRepo) Update(ctx context.Context, session *entity.MemoSession) error {
	for i, s := range r.store.sessions {
		if s.Id == session.Id {
			r.store.sessions[i] = session
			return nil
		}
	}
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeMemoSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeMemoSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MemoSession, error) {
	for _, s := range r.store.sessions {
		if matchesSession(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func matchesSession(s *entity.MemoSession, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByUserID:
			if s.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}

type fakeTurnRepo struct {
	store *fakeStore
}

func (r *fakeTurnRepo) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	r.store.turns = append(r.store.turns, turn)
	return nil
}

func (r *fakeTurnRepo) CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error {
	r.store.turns = append(r.store.turns, turns...)
	return nil
}

func (r *fakeTurnRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var out []*entity.ConversationTurn
	for _, t := range r.store.turns {
		if matchesTurn(t, specs) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TurnIndex < out[j].TurnIndex })
	return out, nil
}

func (r *fakeTurnRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	turns, _ := r.FindAll(ctx, specs...)
	return int64(len(turns)), nil
}

func (r *fakeTurnRepo) NextTurnIndex(ctx context.Context, sessionId uuid.UUID) (int, error) {
	max := -1
	for _, t := range r.store.turns {
		if t.SessionId == sessionId && t.TurnIndex > max {
			max = t.TurnIndex
		}
	}
	return max + 1, nil
}

func matchesTurn(t *entity.ConversationTurn, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.BySessionID:
			if t.SessionId != v.SessionID {
				return false
			}
		case specification.FilterBy:
			if v.Field == "role" && t.Role != v.Value {
				return false
			}
		}
	}
	return true
}

type fakeFactRepo struct {
	store *fakeStore
}

func (r *fakeFactRepo) Upsert(ctx context.Context, fact *entity.Fact) error {
	for i, f := range r.store.facts {
		if f.SessionId == fact.SessionId && f.FieldName == fact.FieldName {
			r.store.facts[i] = fact
			return nil
		}
	}
	r.store.facts = append(r.store.facts, fact)
	return nil
}

func (r *fakeFactRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fact, error) {
	var out []*entity.Fact
	for _, f := range r.store.facts {
		if matchesFact(f, specs) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFactRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	var kept []*entity.Fact
	for _, f := range r.store.facts {
		if f.SessionId != sessionId {
			kept = append(kept, f)
		}
	}
	r.store.facts = kept
	return nil
}

func matchesFact(f *entity.Fact, specs []specification.Specification) bool {
	for _, sp := range specs {
		if v, ok := sp.(specification.BySessionID); ok && f.SessionId != v.SessionID {
			return false
		}
	}
	return true
}

type fakeMemoRepo struct {
	store *fakeStore
}

func (r *fakeMemoRepo) Create(ctx context.Context, m *entity.Memo) error {
	r.store.memos = append(r.store.memos, m)
	return nil
}

func (r *fakeMemoRepo) Update(ctx context.Context, m *entity.Memo) error {
	for i, existing := range r.store.memos {
		if existing.Id == m.Id {
			r.store.memos[i] = m
			return nil
		}
	}
	return nil
}

func (r *fakeMemoRepo) FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.Memo, error) {
	var latest *entity.Memo
	for _, m := range r.store.memos {
		if m.SessionId != sessionId {
			continue
		}
		if latest == nil || m.Iteration > latest.Iteration {
			latest = m
		}
	}
	return latest, nil
}

func (r *fakeMemoRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error) {
	memos, _ := r.FindAll(ctx, specs...)
	if len(memos) == 0 {
		return nil, nil
	}
	return memos[0], nil
}

func (r *fakeMemoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error) {
	var out []*entity.Memo
	for _, m := range r.store.memos {
		if matchesMemo(m, specs) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Iteration < out[j].Iteration })
	return out, nil
}

func (r *fakeMemoRepo) MaxIteration(ctx context.Context, sessionId uuid.UUID) (int, error) {
	latest, _ := r.FindLatest(ctx, sessionId)
	if latest == nil {
		return 0, nil
	}
	return latest.Iteration, nil
}

func matchesMemo(m *entity.Memo, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.BySessionID:
			if m.SessionId != v.SessionID {
				return false
			}
		case specification.ByIteration:
			if m.Iteration != v.Iteration {
				return false
			}
		}
	}
	return true
}

type fakeChunkRepo struct {
	store *fakeStore
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.CorpusChunk) error {
	r.store.chunks = append(r.store.chunks, chunks...)
	return nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	count := int64(0)
	for _, c := range r.store.chunks {
		if matchesChunk(c, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeChunkRepo) DeleteByCorpus(ctx context.Context, kind, key string) error {
	var kept []*entity.CorpusChunk
	for _, c := range r.store.chunks {
		if c.CorpusKind != kind || c.CorpusKey != key {
			kept = append(kept, c)
		}
	}
	r.store.chunks = kept
	return nil
}

func (r *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, kind, key string, embedding []float32, limit int) ([]*contract.ScoredCorpusChunk, error) {
	var out []*contract.ScoredCorpusChunk
	for _, c := range r.store.chunks {
		if c.CorpusKind == kind && c.CorpusKey == key {
			out = append(out, &contract.ScoredCorpusChunk{Chunk: c, Similarity: 0.9})
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func matchesChunk(c *entity.CorpusChunk, specs []specification.Specification) bool {
	for _, sp := range specs {
		if v, ok := sp.(specification.ByCorpus); ok {
			if c.CorpusKind != v.Kind || c.CorpusKey != v.Key {
				return false
			}
		}
	}
	return true
}

func newUserIn(fs *fakeStore) uuid.UUID {
	id := uuid.New()
	fs.users = append(fs.users, &entity.User{
		Id:       id,
		Email:    "analyst@example.com",
		FullName: "Analyst",
	})
	return id
}

// nopLogger satisfies ILogger without touching zap in tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// stubRetriever serves canned passages per corpus kind.
type stubRetriever struct {
	passages map[string][]retrieval.Passage
}

func (s *stubRetriever) Search(ctx context.Context, corpus retrieval.Corpus, query string, topK int) ([]retrieval.Passage, error) {
	return s.passages[corpus.Kind], nil
}

// stubLLM returns one canned reply, or one canned error, for every prompt.
type stubLLM struct {
	reply string
	err   error
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.reply, s.err
}

// stubMailer records acceptance notices.
type stubMailer struct {
	sent []string
}

func (m *stubMailer) SendMemoAccepted(toEmail, memoTitle string, iteration int) error {
	m.sent = append(m.sent, toEmail)
	return nil
}
