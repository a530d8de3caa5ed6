package repository

import (
	"context"

	"angaza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Resource, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Resource, int64, error)
	ListAll(ctx context.Context) ([]model.Resource, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	FindLowStock(ctx context.Context, threshold int) ([]model.Resource, error)
	FindOutOfStock(ctx context.Context) ([]model.Resource, error)
	CountByCategory(ctx context.Context, category string) (int64, error)
}

type resourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	return GetDB(ctx, r.db).Create(resource).Error
}

func (r *resourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	return GetDB(ctx, r.db).Save(resource).Error
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Resource{}).Error
}

func (r *resourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := GetDB(ctx, r.db).First(&resource, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// FindByIDForUpdate takes a row lock so stock checks stay valid until the
// surrounding transaction commits.
func (r *resourceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Resource, error) {
	var resource model.Resource
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&resource).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

func (r *resourceRepository) List(ctx context.Context, page, limit int, search string) ([]model.Resource, int64, error) {
	var resources []model.Resource
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Resource{})
	if search != "" {
		db = db.Where("name LIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&resources).Error; err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

func (r *resourceRepository) ListAll(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := GetDB(ctx, r.db).Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return GetDB(ctx, r.db).Model(&model.Resource{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func (r *resourceRepository) FindLowStock(ctx context.Context, threshold int) ([]model.Resource, error) {
	var resources []model.Resource
	if err := GetDB(ctx, r.db).Where("quantity > 0 AND quantity <= ?", threshold).Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) FindOutOfStock(ctx context.Context) ([]model.Resource, error) {
	var resources []model.Resource
	if err := GetDB(ctx, r.db).Where("quantity = 0").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) CountByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Resource{}).Where("category = ?", category).Count(&count).Error
	return count, err
}
