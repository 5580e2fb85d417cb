package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/internal/repository/contract"
	"memo-drafting-be/internal/repository/specification"
)

type MemoSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoSessionMapper
}

func NewMemoSessionRepository(db *gorm.DB) contract.MemoSessionRepository {
	return &MemoSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoSessionMapper(),
	}
}

func (r *MemoSessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemoSessionRepositoryImpl) Create(ctx context.Context, session *entity.MemoSession) error {
	m := r.mapper.ToModel(session)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*session = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoSessionRepositoryImpl) Update(ctx context.Context, session *entity.MemoSession) error {
	m := r.mapper.ToModel(session)
	// Save skips zero-value bool columns on update, so flags like
	// facts_dirty must be written explicitly.
	err := r.db.WithContext(ctx).Model(&model.MemoSession{}).
		Where("id = ?", m.Id).
		Updates(map[string]interface{}{
			"standard_id":        m.StandardID,
			"state":              m.State,
			"agreement_indexed":  m.AgreementIndexed,
			"facts_dirty":        m.FactsDirty,
			"accepted_iteration": m.AcceptedIteration,
		}).Error
	return err
}

func (r *MemoSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MemoSession{}, id).Error
}

func (r *MemoSessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MemoSession, error) {
	var m model.MemoSession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
