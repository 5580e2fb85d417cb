package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/internal/repository/contract"
	"memo-drafting-be/internal/repository/specification"
)

type ConversationTurnRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationTurnRepository(db *gorm.DB) contract.ConversationTurnRepository {
	return &ConversationTurnRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationTurnRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationTurnRepositoryImpl) Create(ctx context.Context, turn *entity.ConversationTurn) error {
	m := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationTurnRepositoryImpl) CreateBulk(ctx context.Context, turns []*entity.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}
	models := make([]*model.ConversationTurn, len(turns))
	for i, t := range turns {
		models[i] = r.mapper.ToModel(t)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*turns[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ConversationTurnRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var models []*model.ConversationTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConversationTurn, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ConversationTurnRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ConversationTurn{}).Count(&count).Error
	return count, err
}

func (r *ConversationTurnRepositoryImpl) NextTurnIndex(ctx context.Context, sessionId uuid.UUID) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.ConversationTurn{}).
		Select("MAX(turn_index)").
		Where("session_id = ?", sessionId).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}
