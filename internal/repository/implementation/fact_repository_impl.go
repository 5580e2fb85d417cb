package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memo-drafting-be/internal/entity"
	"memo-drafting-be/internal/mapper"
	"memo-drafting-be/internal/model"
	"memo-drafting-be/internal/repository/contract"
	"memo-drafting-be/internal/repository/specification"
)

type FactRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FactMapper
}

func NewFactRepository(db *gorm.DB) contract.FactRepository {
	return &FactRepositoryImpl{
		db:     db,
		mapper: mapper.NewFactMapper(),
	}
}

func (r *FactRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FactRepositoryImpl) Upsert(ctx context.Context, fact *entity.Fact) error {
	m := r.mapper.ToModel(fact)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "field_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "confidence", "source_turn_index", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*fact = *r.mapper.ToEntity(m)
	return nil
}

func (r *FactRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Fact, error) {
	var models []*model.Fact
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Fact, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *FactRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.Fact{}).Error
}
