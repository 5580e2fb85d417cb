package service

import (
	"context"

	"github.com/google/uuid"

	"memo-drafting-be/internal/dto"
	"memo-drafting-be/internal/pkg/logger"
	"memo-drafting-be/internal/repository/unitofwork"
	"memo-drafting-be/pkg/corpus"
	"memo-drafting-be/pkg/events"
	pkgNats "memo-drafting-be/pkg/nats"
	"memo-drafting-be/pkg/retrieval"
	"memo-drafting-be/pkg/store"
)

type IAgreementService interface {
	Upload(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UploadAgreementResponse, error)
}

type agreementService struct {
	sessions         ISessionService
	uowFactory       unitofwork.RepositoryFactory
	builder          *corpus.Builder
	publisherService IPublisherService
	eventPublisher   *pkgNats.Publisher
	log              logger.ILogger
}

func NewAgreementService(
	sessions ISessionService,
	uowFactory unitofwork.RepositoryFactory,
	builder *corpus.Builder,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IAgreementService {
	return &agreementService{
		sessions:         sessions,
		uowFactory:       uowFactory,
		builder:          builder,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Upload indexes a purchase agreement into the session's corpus, replacing
// any previously indexed agreement.
func (s *agreementService) Upload(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.UploadAgreementResponse, error) {
	live, err := s.sessions.Live(ctx, userId)
	if err != nil {
		return nil, err
	}

	live.Lock()
	defer live.Unlock()

	if live.StandardID == "" {
		return nil, ErrNoStandard
	}

	if err := corpus.ValidatePDF(data); err != nil {
		return nil, ErrNotPDF
	}

	pages, err := corpus.ExtractPages(data)
	if err != nil {
		return nil, ErrNotPDF
	}

	chunks, err := s.builder.BuildAgreement(ctx, live.ID, filename, pages)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.CorpusChunkRepository().DeleteByCorpus(ctx, retrieval.KindAgreement, live.ID); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.CorpusChunkRepository().CreateBulk(ctx, chunks); err != nil {
		_ = uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	live.AgreementIndexed = true
	live.FactsDirty = true
	if live.State == store.StateStandardSet {
		live.State = store.StateAgreementReady
	}
	if err := s.sessions.Persist(ctx, live); err != nil {
		return nil, err
	}

	s.log.Info("agreement", "agreement indexed", map[string]interface{}{
		"session_id":  live.ID,
		"document_id": filename,
		"pages":       len(pages),
		"chunks":      len(chunks),
	})

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewAgreementIndexed(live.ID, filename, len(chunks))); err != nil {
			s.log.Warn("agreement", "failed to publish AGREEMENT_INDEXED", map[string]interface{}{"error": err.Error()})
		}
	}
	if err := publishSessionEvent(ctx, s.publisherService, userId, events.TypeAgreementIndexed, map[string]interface{}{
		"document_id": filename,
		"chunks":      len(chunks),
	}); err != nil {
		s.log.Warn("agreement", "failed to publish session event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.UploadAgreementResponse{
		DocumentID: filename,
		Pages:      len(pages),
		Chunks:     len(chunks),
	}, nil
}
