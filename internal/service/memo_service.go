package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"memo-drafting-be/internal/constant"
	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/pkg/mailer"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/events"
	"memo-drafting-be/pkg/memo"
	"memo-drafting-be/pkg/memo/gap"
	"memo-drafting-be/pkg/memo/synthesis"
	"memo-drafting-be/pkg/memo/template"
	pkgNats "memo-drafting-be/pkg/nats"
	"memo-drafting-be/pkg/store"
)

type IMemoService interface {
	Generate(ctx context.Context, userId uuid.UUID, force bool) (*dto.GenerateMemoResponse, error)
	SeedQuestions(ctx context.Context, userId uuid.UUID) (*dto.SeedQuestionsResponse, error)
	Accept(ctx context.Context, userId uuid.UUID) (*dto.AcceptMemoResponse, error)
	Latest(ctx context.Context, userId uuid.UUID) (*dto.MemoResponse, error)
	History(ctx context.Context, userId uuid.UUID) ([]*dto.MemoSummaryResponse, error)

	// GenerateLocked and SeedQuestionsLocked run for a session whose lock
	// the caller already holds. The chat flow uses them to regenerate and
	// re-seed inside the same critical section as the fact merge.
	GenerateLocked(ctx context.Context, live *store.Session, force bool) (*dto.GenerateMemoResponse, error)
	SeedQuestionsLocked(ctx context.Context, live *store.Session) (*dto.SeedQuestionsResponse, error)
}

type memoService struct {
	sessions         ISessionService
	uowFactory       unitofwork.RepositoryFactory
	templates        *template.Registry
	synthesizer      *synthesis.Synthesizer
	analyzer         *gap.Analyzer
	factMapper       *mapper.FactMapper
	memoMapper       *mapper.MemoMapper
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	emailService     mailer.IEmailService
	log              logger.ILogger
}

func NewMemoService(
	sessions ISessionService,
	uowFactory unitofwork.RepositoryFactory,
	templates *template.Registry,
	synthesizer *synthesis.Synthesizer,
	analyzer *gap.Analyzer,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IMemoService {
	return &memoService{
		sessions:         sessions,
		uowFactory:       uowFactory,
		templates:        templates,
		synthesizer:      synthesizer,
		analyzer:         analyzer,
		factMapper:       mapper.NewFactMapper(),
		memoMapper:       mapper.NewMemoMapper(),
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		emailService:     emailService,
		log:              log,
	}
}

func (s *memoService) Generate(ctx context.Context, userId uuid.UUID, force bool) (*dto.GenerateMemoResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	return s.GenerateLocked(ctx, live, force)
}

func (s *memoService) GenerateLocked(ctx context.Context, live *store.Session, force bool) (*dto.GenerateMemoResponse, error) {
	if live.StandardID == "" {
		return nil, ErrNoStandard
	}

	tpl := s.templates.Get(live.StandardID)
	if tpl == nil {
		return nil, ErrUnknownStandard
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Idempotence between chats: without new facts and without force, the
	// existing memo stands.
	if !force && !live.FactsDirty && memoCurrent(live) {
		latest, err := uow.MemoRepository().FindLatest(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		return &dto.GenerateMemoResponse{
			Generated: false,
			Reason:    "memo is up to date",
			Memo:      toMemoResponse(latest),
		}, nil
	}

	factRows, err := uow.FactRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	flat := make([]entity.Fact, len(factRows))
	for i, f := range factRows {
		flat[i] = *f
	}
	facts := s.factMapper.ToFactMap(flat)

	draft := &memo.Memo{
		Iteration: live.MemoIteration + 1,
		Sections:  make([]memo.Section, 0, len(tpl.Sections)),
	}
	retrieved := 0
	for _, spec := range tpl.Sections {
		section := s.synthesizer.Synthesize(ctx, synthesis.Input{
			Spec:             spec,
			StandardID:       live.StandardID,
			AgreementKey:     live.ID,
			AgreementIndexed: live.AgreementIndexed,
			Facts:            facts,
		})
		section.CompletenessState = s.analyzer.Assess(section, spec)
		for _, ev := range section.Evidence {
			if ev.SourceType == memo.SourceStandard || ev.SourceType == memo.SourceAgreement {
				retrieved++
			}
		}
		draft.Sections = append(draft.Sections, section)
	}

	// With zero retrieved passages there is nothing to ground the memo in;
	// conversation facts alone do not make a defensible draft.
	if retrieved == 0 {
		s.log.Warn("memo", "generation produced no retrieved evidence", map[string]interface{}{
			"session_id":  live.ID,
			"standard_id": live.StandardID,
		})
		return &dto.GenerateMemoResponse{
			Generated: false,
			Reason:    constant.MemoUnavailableText,
		}, nil
	}

	persisted := s.memoMapper.FromDraft(sessionId, tpl.Title, draft)
	if err := uow.MemoRepository().Create(ctx, persisted); err != nil {
		return nil, err
	}

	live.MemoIteration = draft.Iteration
	live.FactsDirty = false
	live.State = store.StateMemoDrafted
	if err := s.sessions.Persist(ctx, live); err != nil {
		return nil, err
	}

	userId, _ := uuid.Parse(live.UserID)

	s.log.Info("memo", "memo generated", map[string]interface{}{
		"session_id": live.ID,
		"iteration":  draft.Iteration,
		"forced":     force,
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewMemoGenerated(live.ID, draft.Iteration, force)); err != nil {
			s.log.Warn("memo", "failed to publish MEMO_GENERATED", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := publishSessionEvent(ctx, s.publisherService, userId, events.TypeMemoGenerated, map[string]interface{}{
		"iteration": draft.Iteration,
	}); err != nil {
		s.log.Warn("memo", "failed to publish session event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.GenerateMemoResponse{
		Generated: true,
		Memo:      toMemoResponse(persisted),
	}, nil
}

func (s *memoService) SeedQuestions(ctx context.Context, userId uuid.UUID) (*dto.SeedQuestionsResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	return s.SeedQuestionsLocked(ctx, live)
}

func (s *memoService) SeedQuestionsLocked(ctx context.Context, live *store.Session) (*dto.SeedQuestionsResponse, error) {
	if !memoCurrent(live) {
		return nil, ErrNoMemo
	}

	tpl := s.templates.Get(live.StandardID)
	if tpl == nil {
		return nil, ErrUnknownStandard
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.MemoRepository().FindLatest(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoMemo
	}

	open, err := s.openQuestions(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	specByID := make(map[string]template.SectionSpec, len(tpl.Sections))
	for _, spec := range tpl.Sections {
		specByID[spec.ID] = spec
	}

	draft := s.memoMapper.ToDraft(latest)
	var questions []string
	for _, section := range draft.Sections {
		spec, ok := specByID[section.SpecID]
		if !ok {
			continue
		}
		qs := s.analyzer.Questions(section, spec, open)
		open = append(open, qs...)
		questions = append(questions, qs...)
	}

	if len(questions) > 0 {
		turnIndex, err := uow.ConversationTurnRepository().NextTurnIndex(ctx, sessionId)
		if err != nil {
			return nil, err
		}
		text := constant.SeededQuestionPreamble
		for _, q := range questions {
			text += "\n- " + q
		}
		turn := &entity.ConversationTurn{
			Id:        uuid.New(),
			SessionId: sessionId,
			TurnIndex: turnIndex,
			Role:      entity.TurnRoleAssistant,
			Text:      text,
		}
		if err := uow.ConversationTurnRepository().Create(ctx, turn); err != nil {
			return nil, err
		}

		live.State = store.StateQuestionsSeeded
		if err := s.sessions.Persist(ctx, live); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			if err := s.eventPublisher.Publish(ctx, events.NewQuestionsSeeded(live.ID, len(questions))); err != nil {
				s.log.Warn("memo", "failed to publish QUESTIONS_SEEDED", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return &dto.SeedQuestionsResponse{Questions: questions}, nil
}

// openQuestions rebuilds the set of questions already asked, from the bullet
// lines of previously seeded assistant turns.
func (s *memoService) openQuestions(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]string, error) {
	turns, err := uow.ConversationTurnRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.FilterBy{Field: "role", Value: entity.TurnRoleAssistant},
	)
	if err != nil {
		return nil, err
	}

	var open []string
	for _, t := range turns {
		for _, line := range strings.Split(t.Text, "\n") {
			if strings.HasPrefix(line, "- ") {
				open = append(open, strings.TrimPrefix(line, "- "))
			}
		}
	}
	return open, nil
}

func (s *memoService) Accept(ctx context.Context, userId uuid.UUID) (*dto.AcceptMemoResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	if !memoCurrent(live) {
		return nil, ErrNoMemo
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.MemoRepository().FindLatest(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoMemo
	}

	latest.Accepted = true
	if err := uow.MemoRepository().Update(ctx, latest); err != nil {
		return nil, err
	}

	live.AcceptedIteration = latest.Iteration
	live.State = store.StateMemoAccepted
	if err := s.sessions.Persist(ctx, live); err != nil {
		return nil, err
	}

	s.log.Info("memo", "memo accepted", map[string]interface{}{
		"session_id": live.ID,
		"iteration":  latest.Iteration,
	})
	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewMemoAccepted(live.ID, latest.Iteration)); err != nil {
			s.log.Warn("memo", "failed to publish MEMO_ACCEPTED", map[string]interface{}{"error": err.Error()})
		}
	}

	// Acceptance notice is best effort.
	if s.emailService != nil {
		user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
		if err == nil && user != nil {
			if err := s.emailService.SendMemoAccepted(user.Email, latest.Title, latest.Iteration); err != nil {
				s.log.Warn("memo", "failed to send acceptance email", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	return &dto.AcceptMemoResponse{Iteration: latest.Iteration}, nil
}

func (s *memoService) Latest(ctx context.Context, userId uuid.UUID) (*dto.MemoResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	if !memoCurrent(live) {
		return nil, ErrNoMemo
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	latest, err := uow.MemoRepository().FindLatest(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrNoMemo
	}
	return toMemoResponse(latest), nil
}

func (s *memoService) History(ctx context.Context, userId uuid.UUID) ([]*dto.MemoSummaryResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	memos, err := uow.MemoRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "iteration"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MemoSummaryResponse, 0, len(memos))
	for _, m := range memos {
		out = append(out, &dto.MemoSummaryResponse{
			Iteration: m.Iteration,
			Title:     m.Title,
			Accepted:  m.Accepted,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// memoCurrent reports whether the latest memo row still reflects the selected
// standard. Switching standards returns the session to a pre-draft state and
// leaves prior iterations as audit history only.
func memoCurrent(live *store.Session) bool {
	if live.MemoIteration == 0 {
		return false
	}
	switch live.State {
	case store.StateMemoDrafted, store.StateQuestionsSeeded, store.StateMemoAccepted:
		return true
	}
	return false
}

func toMemoResponse(m *entity.Memo) *dto.MemoResponse {
	if m == nil {
		return nil
	}

	sections := make([]dto.SectionDTO, 0, len(m.Sections))
	for _, s := range m.Sections {
		evidence := make([]dto.EvidenceDTO, 0, len(s.Evidence))
		for _, e := range s.Evidence {
			evidence = append(evidence, dto.EvidenceDTO{
				SourceType: e.SourceType,
				DocumentID: e.DocumentID,
				Page:       e.Page,
				Snippet:    e.Snippet,
				Score:      e.Score,
			})
		}
		sections = append(sections, dto.SectionDTO{
			SpecID:            s.SpecID,
			Title:             s.Title,
			SynthesizedText:   s.SynthesizedText,
			CompletenessState: s.CompletenessState,
			Evidence:          evidence,
		})
	}

	return &dto.MemoResponse{
		Iteration: m.Iteration,
		Title:     m.Title,
		Accepted:  m.Accepted,
		Sections:  sections,
		CreatedAt: m.CreatedAt,
	}
}
