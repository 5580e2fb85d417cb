package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/repository/memory"
	"memo-drafting-be/internal/repository/specification"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/events"
	"memo-drafting-be/pkg/memo/template"
	pkgNats "memo-drafting-be/pkg/nats"
	"memo-drafting-be/pkg/retrieval"
	"memo-drafting-be/pkg/store"
)

type ISessionService interface {
	// Live returns the in-memory session for the user, creating the
	// persisted session on first touch. The caller is responsible for
	// locking the returned session around multi-step work.
	Live(ctx context.Context, userId uuid.UUID) (*store.Session, error)

	// Persist writes the live projection back to the database.
	Persist(ctx context.Context, live *store.Session) error

	SelectStandard(ctx context.Context, userId uuid.UUID, req *dto.SelectStandardRequest) (*dto.SessionSnapshotResponse, error)
	Snapshot(ctx context.Context, userId uuid.UUID) (*dto.SessionSnapshotResponse, error)
}

type sessionService struct {
	uowFactory     unitofwork.RepositoryFactory
	liveSessions   *memory.SessionRepository
	templates      *template.Registry
	factMapper     *mapper.FactMapper
	eventPublisher *pkgNats.Publisher
	log            logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	liveSessions *memory.SessionRepository,
	templates *template.Registry,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:     uowFactory,
		liveSessions:   liveSessions,
		templates:      templates,
		factMapper:     mapper.NewFactMapper(),
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *sessionService) Live(ctx context.Context, userId uuid.UUID) (*store.Session, error) {
	if live, ok := s.liveSessions.Get(userId.String()); ok {
		return live, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	persisted, err := uow.MemoSessionRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}

	if persisted == nil {
		persisted = &entity.MemoSession{
			Id:        uuid.New(),
			UserId:    userId,
			State:     store.StateNoStandard,
			CreatedAt: time.Now(),
		}
		if err := uow.MemoSessionRepository().Create(ctx, persisted); err != nil {
			return nil, err
		}
	}

	iteration, err := uow.MemoRepository().MaxIteration(ctx, persisted.Id)
	if err != nil {
		return nil, err
	}

	live := &store.Session{
		ID:                persisted.Id.String(),
		UserID:            userId.String(),
		State:             persisted.State,
		StandardID:        persisted.StandardID,
		AgreementIndexed:  persisted.AgreementIndexed,
		FactsDirty:        persisted.FactsDirty,
		MemoIteration:     iteration,
		AcceptedIteration: persisted.AcceptedIteration,
	}
	s.liveSessions.Save(live)
	return live, nil
}

func (s *sessionService) Persist(ctx context.Context, live *store.Session) error {
	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return fmt.Errorf("invalid live session id: %w", err)
	}
	userId, err := uuid.Parse(live.UserID)
	if err != nil {
		return fmt.Errorf("invalid live user id: %w", err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MemoSessionRepository().Update(ctx, &entity.MemoSession{
		Id:                sessionId,
		UserId:            userId,
		StandardID:        live.StandardID,
		State:             live.State,
		AgreementIndexed:  live.AgreementIndexed,
		FactsDirty:        live.FactsDirty,
		AcceptedIteration: live.AcceptedIteration,
	})
}

func (s *sessionService) SelectStandard(ctx context.Context, userId uuid.UUID, req *dto.SelectStandardRequest) (*dto.SessionSnapshotResponse, error) {
	if s.templates.Get(req.StandardID) == nil {
		return nil, ErrUnknownStandard
	}

	live, err := s.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.CorpusChunkRepository().Count(ctx,
		specification.ByCorpus{Kind: retrieval.KindStandard, Key: req.StandardID})
	if err != nil {
		return nil, err
	}
	if count == 0 {
		// Selecting an unindexed standard is allowed; generation will
		// report the memo unavailable until the corpus is built.
		s.log.Warn("session", "standard corpus is empty", map[string]interface{}{
			"standard_id": req.StandardID,
		})
	}

	// Switching standards keeps accumulated facts; they describe the
	// transaction, not the framework. Any drafted memo is invalidated: the
	// session returns to a pre-draft state and the old iterations stay in
	// history only.
	changed := live.StandardID != req.StandardID
	live.StandardID = req.StandardID
	if changed {
		live.FactsDirty = true
		if live.AgreementIndexed {
			live.State = store.StateAgreementReady
		} else {
			live.State = store.StateStandardSet
		}
	}
	if err := s.Persist(ctx, live); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewStandardSelected(live.ID, req.StandardID)); err != nil {
			s.log.Warn("session", "failed to publish STANDARD_SELECTED", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.snapshotLocked(ctx, live)
}

func (s *sessionService) Snapshot(ctx context.Context, userId uuid.UUID) (*dto.SessionSnapshotResponse, error) {
	live, err := s.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	return s.snapshotLocked(ctx, live)
}

// snapshotLocked assumes the caller holds the session lock.
func (s *sessionService) snapshotLocked(ctx context.Context, live *store.Session) (*dto.SessionSnapshotResponse, error) {
	sessionId, err := uuid.Parse(live.ID)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	facts, err := uow.FactRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}

	flat := make([]entity.Fact, len(facts))
	for i, f := range facts {
		flat[i] = *f
	}

	return &dto.SessionSnapshotResponse{
		SessionId:          sessionId,
		State:              live.State,
		StandardID:         live.StandardID,
		AgreementIndexed:   live.AgreementIndexed,
		MemoIteration:      live.MemoIteration,
		AcceptedIteration:  live.AcceptedIteration,
		FactsDirty:         live.FactsDirty,
		Facts:              s.factMapper.ToFactMap(flat),
		AvailableStandards: s.templates.StandardIDs(),
	}, nil
}
