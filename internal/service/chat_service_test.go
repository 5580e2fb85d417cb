package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memo-drafting-be/internal/constant"
	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/repository/memory"
	"memo-drafting-be/pkg/memo/extract"
	"memo-drafting-be/pkg/memo/gap"
	"memo-drafting-be/pkg/memo/schema"
	"memo-drafting-be/pkg/memo/synthesis"
	"memo-drafting-be/pkg/memo/template"
	"memo-drafting-be/pkg/retrieval"
	"memo-drafting-be/pkg/store"
)

type chatEnv struct {
	*testEnv
	chatService IChatService
	llm         *stubLLM
}

// newChatEnv wires the chat flow over the shared fakes. The stub model
// serves both extraction and synthesis; tests set its reply to the JSON the
// extractor should see.
func newChatEnv(t *testing.T, passages map[string][]retrieval.Passage) *chatEnv {
	t.Helper()

	fs := newFakeStore()
	factory := fs.factory()
	templates := template.Builtin()
	model := &stubLLM{reply: "{}"}

	retriever := &stubRetriever{passages: passages}
	sessions := NewSessionService(factory, memory.NewSessionRepository(), templates, nil, nopLogger{})
	synthesizer := synthesis.NewSynthesizer(retriever, model, synthesis.DefaultConfig())
	analyzer := gap.NewAnalyzer(gap.DefaultConfig())
	mailer := &stubMailer{}
	memoService := NewMemoService(sessions, factory, templates, synthesizer, analyzer, nil, nil, mailer, nopLogger{})
	extractor := extract.NewExtractor(model, time.Second)
	chatService := NewChatService(sessions, memoService, factory, extractor, retriever, model, time.Second, nopLogger{})

	env := &testEnv{
		store:       fs,
		sessions:    sessions,
		memoService: memoService,
		mailer:      mailer,
		userId:      newUserIn(fs),
	}
	return &chatEnv{testEnv: env, chatService: chatService, llm: model}
}

func TestChatAppliesExtractedFacts(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")
	env.llm.reply = `{"acquirer": {"value": "Alpha Corp", "confidence": "high"}}`

	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "Alpha Corp is the acquirer.",
	})
	assert.NoError(t, err)

	assert.Equal(t, 0, res.TurnIndex)
	assert.Equal(t, []string{"acquirer"}, res.AppliedFields)
	assert.False(t, res.Regenerated, "no memo exists yet, so nothing regenerates")
	assert.Equal(t, 0, res.MemoIteration)

	// User turn and assistant reply are both persisted.
	assert.Len(t, env.store.turns, 2)
	assert.Equal(t, entity.TurnRoleUser, env.store.turns[0].Role)
	assert.Equal(t, entity.TurnRoleAssistant, env.store.turns[1].Role)
	assert.Equal(t, 1, env.store.turns[1].TurnIndex)

	assert.Len(t, env.store.facts, 1)
	assert.Equal(t, "Alpha Corp", env.store.facts[0].Value)
	assert.Equal(t, 0, env.store.facts[0].SourceTurnIndex)

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.True(t, live.FactsDirty)
}

func TestChatRegeneratesAfterFirstMemo(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.llm.reply = `{"acquiree": {"value": "Beta Ltd", "confidence": "high"}}`
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "The target is Beta Ltd.",
	})
	assert.NoError(t, err)

	assert.True(t, res.Regenerated)
	assert.Equal(t, 2, res.MemoIteration)
	assert.Len(t, env.store.memos, 2)
	assert.Contains(t, res.Reply, "regenerated")
}

func TestChatRegenerationReSeedsQuestions(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.llm.reply = `{"acquiree": {"value": "Beta Ltd", "confidence": "high"}}`
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "The target is Beta Ltd.",
	})
	assert.NoError(t, err)
	assert.True(t, res.Regenerated)
	assert.NotEmpty(t, res.SeededQuestions, "an incomplete regenerated memo gets its gaps re-asked")

	// The seeded turn follows the assistant reply in the same conversation.
	last := env.store.turns[len(env.store.turns)-1]
	assert.Equal(t, entity.TurnRoleAssistant, last.Role)
	assert.True(t, strings.HasPrefix(last.Text, constant.SeededQuestionPreamble))
	assert.Equal(t, len(res.SeededQuestions), strings.Count(last.Text, "\n- "))

	live, err := env.sessions.Live(context.Background(), env.userId)
	assert.NoError(t, err)
	assert.Equal(t, store.StateQuestionsSeeded, live.State)
}

func TestChatChitChatChangesNothing(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	_, err := env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.llm.reply = "{}"
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "thanks, looks good so far!",
	})
	assert.NoError(t, err)

	assert.Empty(t, res.AppliedFields)
	assert.False(t, res.Regenerated)
	assert.Len(t, env.store.memos, 1, "chit-chat never triggers regeneration")
	assert.Empty(t, env.store.facts)
	assert.Contains(t, res.Reply, "unchanged")
}

func TestChatLowerConfidenceDoesNotRegenerate(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	env.llm.reply = `{"consideration": {"value": "$50m in cash", "confidence": "high"}}`
	_, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "The price is $50m in cash.",
	})
	assert.NoError(t, err)

	_, err = env.memoService.Generate(context.Background(), env.userId, false)
	assert.NoError(t, err)

	env.llm.reply = `{"consideration": {"value": "maybe fifty million", "confidence": "low"}}`
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "I think it was about fifty million?",
	})
	assert.NoError(t, err)

	assert.False(t, res.Regenerated)
	assert.Len(t, env.store.memos, 1)
	// The high-confidence value stands.
	assert.Equal(t, "$50m in cash", env.store.facts[0].Value)
}

func TestChatReplyAnswersOverRetrievedContext(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	env.llm.reply = "Under IFRS 3 the acquirer is the entity that obtains control of the acquiree."
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "Who counts as the acquirer here?",
	})
	assert.NoError(t, err)

	// The reply carries the model's answer first, then the turn status.
	assert.Contains(t, res.Reply, "obtains control of the acquiree")
	assert.Contains(t, res.Reply, "unchanged")
}

func TestChatReplyDegradesWhenModelFails(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	env.llm.err = errors.New("model unreachable")
	res, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{
		Message: "Who counts as the acquirer here?",
	})
	assert.NoError(t, err)

	// No model answer; the status line alone survives.
	assert.Equal(t, "Noted. I did not find new transaction facts in that message; the memo is unchanged.", res.Reply)
}

func TestEvaluateIsPureAndRepeatable(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")
	env.llm.reply = `{"goodwill": {"value": "$4m", "confidence": "medium"}}`

	req := &dto.EvaluateRequest{Message: "Goodwill comes to about $4m."}

	first, err := env.chatService.Evaluate(context.Background(), env.userId, req)
	assert.NoError(t, err)
	second, err := env.chatService.Evaluate(context.Background(), env.userId, req)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.WouldRegenerate)
	assert.Equal(t, []string{"goodwill"}, first.NewFields)
	assert.Equal(t, schema.ConfidenceMedium, first.ExtractedFacts["goodwill"].Confidence)

	// Pure: no turns, facts, or memos were written.
	assert.Empty(t, env.store.turns)
	assert.Empty(t, env.store.facts)
	assert.Empty(t, env.store.memos)
}

func TestChatHistoryOrderedByTurn(t *testing.T) {
	env := newChatEnv(t, standardPassages())
	env.selectStandard(t, "ifrs")

	env.llm.reply = `{"acquirer": {"value": "Alpha Corp", "confidence": "high"}}`
	_, err := env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{Message: "Alpha Corp acquires."})
	assert.NoError(t, err)

	env.llm.reply = "{}"
	_, err = env.chatService.Chat(context.Background(), env.userId, &dto.SendChatRequest{Message: "anything else?"})
	assert.NoError(t, err)

	history, err := env.chatService.History(context.Background(), env.userId)
	assert.NoError(t, err)
	if assert.Len(t, history, 4) {
		for i, turn := range history {
			assert.Equal(t, i, turn.TurnIndex)
		}
		assert.Equal(t, entity.TurnRoleUser, history[0].Role)
		assert.Equal(t, entity.TurnRoleAssistant, history[1].Role)
	}
}
