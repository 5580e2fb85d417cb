package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"memo-drafting-be/internal/constant"
	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/memory"
	"memo-drafting-be/pkg/memo/gap"
	"memo-drafting-be/pkg/memo/synthesis"
	"memo-drafting-be/pkg/memo/template"
	"memo-drafting-be/pkg/retrieval"
	"memo-drafting-be/pkg/store"
)

type testEnv struct {
	store       *fakeStore
	sessions    ISessionService
	memoService IMemoService
	mailer      *stubMailer
	userId      uuid.UUID
}

func newTestEnv(t *testing.T, passages map[string][]retrieval.Passage) *testEnv {
	t.Helper()

	fs := newFakeStore()
	factory := fs.factory()
	templates := template.Builtin()

	sessions := NewSessionService(factory, memory.NewSessionRepository(), templates, nil, nopLogger{})
	synthesizer := synthesis.NewSynthesizer(&stubRetriever{passages: passages}, &stubLLM{reply: "drafted section text"}, synthesis.DefaultConfig())
	analyzer := gap.NewAnalyzer(gap.DefaultConfig())
	mailer := &stubMailer{}
	memoService := NewMemoService(sessions, factory, templates, synthesizer, analyzer, nil, nil, mailer, nopLogger{})

	return &testEnv{
		store:       fs,
		sessions:    sessions,
		memoService: memoService,
		mailer:      mailer,
		userId:      newUserIn(fs),
	}
}

func standardPassages() map[string][]retrieval.Passage {
	return map[string][]retrieval.Passage{
		retrieval.KindStandard: {
			{DocumentID: "ifrs3.pdf", Page: 7, Snippet: "guidance on business combinations", Score: 0.88},
		},
	}
}

func (e *testEnv) selectStandard(t *testing.T, standardID string) {
	t.Helper()
	_, err := e.sessions.SelectStandard(context.Background(), e.userId, &dto.SelectStandardRequest{StandardID: standardID})
	if err != nil {
		t.Fatalf("SelectStandard failed: %v", err)
	}
}

func TestGenerateRequiresStandard(t *testing.T) {
	env := newTestEnv(t, standardPassages())

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.ErrorIs(t, err, ErrNoStandard)
}

func TestGenerateIncrementsIteration(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	first, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	assert.True(t, first.Generated)
	assert.Equal(t, 1, first.Memo.Iteration)

	second, err := env.memoService.Generate(context.Background(), env.userId, true)
	assert.NoError(t, err)
	assert.True(t, second.Generated)
	assert.Equal(t, 2, second.Memo.Iteration)

	assert.Len(t, env.store.memos, 2, "previous iterations are retained")

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateMemoDrafted, live.State)
	assert.Equal(t, 2, live.MemoIteration)
}

func TestGenerateIsIdempotentWithoutNewFacts(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	first, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	assert.True(t, first.Generated)

	// Facts are clean after generation; a forceless call must not re-draft.
	repeat, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	assert.False(t, repeat.Generated)
	assert.Equal(t, "memo is up to date", repeat.Reason)
	assert.Equal(t, 1, repeat.Memo.Iteration)
	assert.Len(t, env.store.memos, 1)
}

func TestGenerateUnavailableWithoutRetrievedEvidence(t *testing.T) {
	env := newTestEnv(t, map[string][]retrieval.Passage{})
	env.selectStandard(t, "ifrs")

	res, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	assert.False(t, res.Generated)
	assert.Equal(t, constant.MemoUnavailableText, res.Reason)
	assert.Nil(t, res.Memo)

	// Nothing persisted, facts stay dirty so the next attempt retries.
	assert.Empty(t, env.store.memos)
	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.True(t, live.FactsDirty)
	assert.Equal(t, 0, live.MemoIteration)
}

func TestSeedQuestionsRequiresMemo(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.SeedQuestions(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)
}

func TestSeedQuestionsDoesNotRepeatOpenQuestions(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	first, err := env.memoService.SeedQuestions(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.NotEmpty(t, first.Questions, "incomplete sections should yield questions")

	// The seeded turn is appended to the conversation with one bullet per
	// question.
	var seededTurn *entity.ConversationTurn
	for _, turn := range env.store.turns {
		if turn.Role == entity.TurnRoleAssistant && strings.HasPrefix(turn.Text, constant.SeededQuestionPreamble) {
			seededTurn = turn
		}
	}
	if assert.NotNil(t, seededTurn) {
		assert.Equal(t, len(first.Questions), strings.Count(seededTurn.Text, "\n- "))
	}

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateQuestionsSeeded, live.State)

	// Re-seeding with no new memo content asks nothing new.
	second, err := env.memoService.SeedQuestions(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Empty(t, second.Questions)
}

func TestAcceptMarksLatestIteration(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	_, err = env.memoService.Generate(context.Background(), env.userId, true)
	assert.NoError(t, err)

	res, err := env.memoService.Accept(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Iteration)

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateMemoAccepted, live.State)
	assert.Equal(t, 2, live.AcceptedIteration)

	latest, err := env.memoService.Latest(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.True(t, latest.Accepted)

	assert.Equal(t, []string{"analyst@example.com"}, env.mailer.sent)
}

func TestAcceptRequiresMemo(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Accept(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)
}

func TestLatestAndHistory(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Latest(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)

	_, err = env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	_, err = env.memoService.Generate(context.Background(), env.userId, true)
	assert.NoError(t, err)

	latest, err := env.memoService.Latest(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, 2, latest.Iteration)
	assert.NotEmpty(t, latest.Sections)

	history, err := env.memoService.History(context.Background(), env.userId)
	assert.NoError(t, err)
	if assert.Len(t, history, 2) {
		assert.Equal(t, 1, history[0].Iteration)
		assert.Equal(t, 2, history[1].Iteration)
	}
}

func TestStandardSwitchKeepsFactsAndDirtiesMemo(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	sessionId, err := uuid.Parse(live.ID)
	assert.NoError(t, err)

	env.store.facts = append(env.store.facts, &entity.Fact{
		Id:        uuid.New(),
		SessionId: sessionId,
		FieldName: "acquirer",
		Value:     "Alpha Corp",
	})

	_, err = env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	snapshot, err := env.sessions.SelectStandard(context.Background(), env.userId, &dto.SelectStandardRequest{StandardID: "asc805"})
	assert.NoError(t, err)

	assert.Equal(t, "asc805", snapshot.StandardID)
	assert.True(t, snapshot.FactsDirty, "switching standards stales the memo")
	assert.Contains(t, snapshot.Facts, "acquirer", "facts describe the deal and survive the switch")
}

func TestStandardSwitchInvalidatesPriorMemo(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.selectStandard(t, "asc805")

	// The session drops back to a pre-draft state and the old standard's
	// memo is no longer current.
	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateStandardSet, live.State)

	_, err = env.memoService.Latest(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)
	_, err = env.memoService.SeedQuestions(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)
	_, err = env.memoService.Accept(context.Background(), env.userId)
	assert.ErrorIs(t, err, ErrNoMemo)

	// Regeneration continues the iteration sequence; nothing is overwritten.
	res, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)
	assert.True(t, res.Generated)
	assert.Equal(t, 2, res.Memo.Iteration)
	assert.Len(t, env.store.memos, 2, "the prior iteration stays in history")

	history, err := env.memoService.History(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestStandardSwitchKeepsAgreementReady(t *testing.T) {
	env := newTestEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	live.AgreementIndexed = true
	live.State = store.StateAgreementReady

	_, err = env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.selectStandard(t, "asc805")

	live, err = env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateAgreementReady, live.State, "the indexed agreement survives the switch")
}
