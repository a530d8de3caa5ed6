package repository

import (
	"context"

	"angaza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DistributionRepository interface {
	Create(ctx context.Context, distribution *model.Distribution) error
	Update(ctx context.Context, distribution *model.Distribution) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Distribution, error)
	List(ctx context.Context, page, limit int, category string) ([]model.Distribution, int64, error)
	ListAll(ctx context.Context, category string) ([]model.Distribution, error)
}

type distributionRepository struct {
	db *gorm.DB
}

func NewDistributionRepository(db *gorm.DB) DistributionRepository {
	return &distributionRepository{db: db}
}

func (r *distributionRepository) Create(ctx context.Context, distribution *model.Distribution) error {
	return GetDB(ctx, r.db).Create(distribution).Error
}

func (r *distributionRepository) Update(ctx context.Context, distribution *model.Distribution) error {
	return GetDB(ctx, r.db).Save(distribution).Error
}

func (r *distributionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Distribution{}).Error
}

func (r *distributionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Distribution, error) {
	var distribution model.Distribution
	if err := GetDB(ctx, r.db).First(&distribution, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &distribution, nil
}

func (r *distributionRepository) List(ctx context.Context, page, limit int, category string) ([]model.Distribution, int64, error) {
	var distributions []model.Distribution
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Distribution{})
	if category != "" {
		db = db.Joins("JOIN resources ON resources.id = distributions.resource_id").
			Where("resources.category = ?", category)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("distributions.created_at desc").Offset(offset).Limit(limit).Find(&distributions).Error; err != nil {
		return nil, 0, err
	}

	return distributions, total, nil
}

func (r *distributionRepository) ListAll(ctx context.Context, category string) ([]model.Distribution, error) {
	var distributions []model.Distribution
	db := GetDB(ctx, r.db).Model(&model.Distribution{})
	if category != "" {
		db = db.Joins("JOIN resources ON resources.id = distributions.resource_id").
			Where("resources.category = ?", category)
	}
	if err := db.Find(&distributions).Error; err != nil {
		return nil, err
	}
	return distributions, nil
}
