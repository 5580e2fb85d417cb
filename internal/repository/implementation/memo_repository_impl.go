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

type MemoRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoMapper
}

func NewMemoRepository(db *gorm.DB) contract.MemoRepository {
	return &MemoRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoMapper(),
	}
}

func (r *MemoRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemoRepositoryImpl) Create(ctx context.Context, memo *entity.Memo) error {
	m := r.mapper.ToModel(memo)
	// Create cascades the Sections and Evidence associations in the same
	// insert.
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*memo = *r.mapper.ToEntity(m)
	return nil
}

func (r *MemoRepositoryImpl) Update(ctx context.Context, memo *entity.Memo) error {
	err := r.db.WithContext(ctx).Model(&model.Memo{}).
		Where("id = ?", memo.Id).
		Updates(map[string]interface{}{
			"title":    memo.Title,
			"accepted": memo.Accepted,
		}).Error
	return err
}

func (r *MemoRepositoryImpl) FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.Memo, error) {
	var m model.Memo
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("memo_sections.position ASC")
		}).
		Preload("Sections.Evidence", func(db *gorm.DB) *gorm.DB {
			return db.Order("memo_evidence.position ASC")
		}).
		Where("session_id = ?", sessionId).
		Order("iteration DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MemoRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Memo, error) {
	var m model.Memo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("memo_sections.position ASC")
		}).
		Preload("Sections.Evidence", func(db *gorm.DB) *gorm.DB {
			return db.Order("memo_evidence.position ASC")
		}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MemoRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Memo, error) {
	var models []*model.Memo
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Memo, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *MemoRepositoryImpl) MaxIteration(ctx context.Context, sessionId uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.Memo{}).
		Select("MAX(iteration)").
		Where("session_id = ?", sessionId).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}
