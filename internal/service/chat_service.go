package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/llm"
	"memo-drafting-be/pkg/memo/extract"
	"memo-drafting-be/pkg/memo/facts"
	"memo-drafting-be/pkg/memo/policy"
	"memo-drafting-be/pkg/memo/schema"
	"memo-drafting-be/pkg/retrieval"
	"memo-drafting-be/pkg/store"
)

// passages pulled per corpus when answering a chat message
const chatContextTopK = 3

type IChatService interface {
	Chat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	// Evaluate answers "what would this message change" without persisting
	// anything. Calling it twice with the same input yields the same answer.
	Evaluate(ctx context.Context, userId uuid.UUID, req *dto.EvaluateRequest) (*dto.EvaluateResponse, error)
	History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatTurnResponse, error)
}

type chatService struct {
	sessions     ISessionService
	memoService  IMemoService
	uowFactory   unitofwork.RepositoryFactory
	extractor    *extract.Extractor
	retriever    retrieval.Retriever
	provider     llm.LLMProvider
	replyTimeout time.Duration
	factMapper   *mapper.FactMapper
	log          logger.ILogger
}

func NewChatService(
	sessions ISessionService,
	memoService IMemoService,
	uowFactory unitofwork.RepositoryFactory,
	extractor *extract.Extractor,
	retriever retrieval.Retriever,
	provider llm.LLMProvider,
	replyTimeout time.Duration,
	log logger.ILogger,
) IChatService {
	if replyTimeout <= 0 {
		replyTimeout = 30 * time.Second
	}
	return &chatService{
		sessions:     sessions,
		memoService:  memoService,
		uowFactory:   uowFactory,
		extractor:    extractor,
		retriever:    retriever,
		provider:     provider,
		replyTimeout: replyTimeout,
		factMapper:   mapper.NewFactMapper(),
		log:          log,
	}
}

func (s *chatService) Chat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	// The whole turn runs under the session lock: extraction result merge,
	// fact upserts, and any triggered regeneration must not interleave with
	// another turn for the same session.
	live.Lock()
	defer live.Unlock()

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	extracted := s.extractor.Extract(ctx, req.Message)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	accumulated, err := s.loadFacts(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	shouldRegen := policy.ShouldRegenerate(extracted, accumulated)
	merged, applied := facts.Merge(accumulated, extracted)

	turnIndex, err := uow.ConversationTurnRepository().NextTurnIndex(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	userTurn := &entity.ConversationTurn{
		Id:             uuid.New(),
		SessionId:      sessionId,
		TurnIndex:      turnIndex,
		Role:           entity.TurnRoleUser,
		Text:           req.Message,
		ExtractedFacts: extracted,
		CreatedAt:      time.Now(),
	}
	if err := uow.ConversationTurnRepository().Create(ctx, userTurn); err != nil {
		return nil, err
	}

	for _, field := range applied {
		v := merged[field]
		if err := uow.FactRepository().Upsert(ctx, &entity.Fact{
			Id:              uuid.New(),
			SessionId:       sessionId,
			FieldName:       field,
			Value:           v.Value,
			Confidence:      v.Confidence,
			SourceTurnIndex: turnIndex,
			UpdatedAt:       time.Now(),
		}); err != nil {
			return nil, err
		}
	}

	if len(applied) > 0 {
		live.FactsDirty = true
		if err := s.sessions.Persist(ctx, live); err != nil {
			return nil, err
		}
	}

	// Regenerate only when a memo already exists; before the first
	// generation the user drives generation explicitly.
	regenerated := false
	if shouldRegen && live.MemoIteration > 0 {
		res, err := s.memoService.GenerateLocked(ctx, live, false)
		if err != nil {
			// A failed regeneration degrades the turn, not the chat: facts
			// are already saved and the next generation will pick them up.
			s.log.Error("chat", "regeneration after fact merge failed", map[string]interface{}{
				"session_id": live.ID,
				"error":      err.Error(),
			})
		} else {
			regenerated = res.Generated
		}
	}

	reply := s.composeReply(ctx, live, req.Message, applied, regenerated)
	assistantTurn := &entity.ConversationTurn{
		Id:        uuid.New(),
		SessionId: sessionId,
		TurnIndex: turnIndex + 1,
		Role:      entity.TurnRoleAssistant,
		Text:      reply,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationTurnRepository().Create(ctx, assistantTurn); err != nil {
		return nil, err
	}

	// A regenerated memo gets its gaps re-asked in the same turn, so the
	// conversation keeps steering the author toward completeness.
	var seeded []string
	if regenerated {
		seedRes, err := s.memoService.SeedQuestionsLocked(ctx, live)
		if err != nil {
			s.log.Error("chat", "question seeding after regeneration failed", map[string]interface{}{
				"session_id": live.ID,
				"error":      err.Error(),
			})
		} else {
			seeded = seedRes.Questions
		}
	}

	return &dto.SendChatResponse{
		TurnIndex:       turnIndex,
		ExtractedFacts:  extracted,
		AppliedFields:   applied,
		Regenerated:     regenerated,
		MemoIteration:   live.MemoIteration,
		Reply:           reply,
		SeededQuestions: seeded,
	}, nil
}

func (s *chatService) Evaluate(ctx context.Context, userId uuid.UUID, req *dto.EvaluateRequest) (*dto.EvaluateResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	extracted := s.extractor.Extract(ctx, req.Message)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	accumulated, err := s.loadFacts(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	return &dto.EvaluateResponse{
		ExtractedFacts:  extracted,
		WouldRegenerate: policy.ShouldRegenerate(extracted, accumulated),
		NewFields:       facts.NewFields(accumulated, extracted),
	}, nil
}

func (s *chatService) History(ctx context.Context, userId uuid.UUID) ([]*dto.ChatTurnResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "turn_index"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ChatTurnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, &dto.ChatTurnResponse{
			TurnIndex:      t.TurnIndex,
			Role:           t.Role,
			Text:           t.Text,
			ExtractedFacts: t.ExtractedFacts,
			CreatedAt:      t.CreatedAt,
		})
	}
	return out, nil
}

func (s *chatService) loadFacts(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (schema.FactMap, error) {
	rows, err := uow.FactRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	flat := make([]entity.Fact, len(rows))
	for i, f := range rows {
		flat[i] = *f
	}
	return s.factMapper.ToFactMap(flat), nil
}

// composeReply answers the message with the model over passages retrieved
// from both corpora, then appends the status line reporting what the turn
// changed. A retrieval or model failure degrades to the status line alone.
func (s *chatService) composeReply(ctx context.Context, live *store.Session, message string, applied []string, regenerated bool) string {
	status := replyStatus(applied, regenerated)

	answer := s.answerFromCorpora(ctx, live, message)
	if answer == "" {
		return status
	}
	return answer + "\n\n" + status
}

func (s *chatService) answerFromCorpora(ctx context.Context, live *store.Session, message string) string {
	if s.provider == nil {
		return ""
	}

	var passages []retrieval.Passage
	if s.retriever != nil && live.StandardID != "" {
		got, err := s.retriever.Search(ctx, retrieval.Corpus{
			Kind: retrieval.KindStandard,
			Key:  live.StandardID,
		}, message, chatContextTopK)
		if err != nil {
			s.log.Warn("chat", "standard retrieval for reply failed", map[string]interface{}{"error": err.Error()})
		} else {
			passages = append(passages, got...)
		}
	}
	if s.retriever != nil && live.AgreementIndexed {
		got, err := s.retriever.Search(ctx, retrieval.Corpus{
			Kind: retrieval.KindAgreement,
			Key:  live.ID,
		}, message, chatContextTopK)
		if err != nil {
			s.log.Warn("chat", "agreement retrieval for reply failed", map[string]interface{}{"error": err.Error()})
		} else {
			passages = append(passages, got...)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.replyTimeout)
	defer cancel()

	answer, err := s.provider.Generate(ctx, buildChatPrompt(message, passages), llm.WithTemperature(0.3))
	if err != nil {
		s.log.Warn("chat", "reply generation failed", map[string]interface{}{"error": err.Error()})
		return ""
	}
	return strings.TrimSpace(answer)
}

func buildChatPrompt(message string, passages []retrieval.Passage) string {
	var b strings.Builder
	b.WriteString("You are an accounting analyst assistant helping draft a business combination memo.\n")
	b.WriteString("Answer the user's message. Use the context passages where they are relevant and cite the document they come from. Be concise.\n")
	if len(passages) > 0 {
		b.WriteString("\nContext:\n")
		for _, p := range passages {
			fmt.Fprintf(&b, "- [%s p.%d] %s\n", p.DocumentID, p.Page, p.Snippet)
		}
	}
	b.WriteString("\nUser message: ")
	b.WriteString(message)
	b.WriteString("\n")
	return b.String()
}

func replyStatus(applied []string, regenerated bool) string {
	if len(applied) == 0 {
		return "Noted. I did not find new transaction facts in that message; the memo is unchanged."
	}

	readable := make([]string, len(applied))
	for i, f := range applied {
		readable[i] = strings.ReplaceAll(f, "_", " ")
	}
	reply := fmt.Sprintf("Recorded: %s.", strings.Join(readable, ", "))
	if regenerated {
		reply += " The memo has been regenerated with this information."
	} else {
		reply += " The memo will reflect this on the next generation."
	}
	return reply
}
