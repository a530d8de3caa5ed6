package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"angaza/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type CategoryService interface {
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	CreateCategory(ctx context.Context, userID string, req CreateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, userID string, id string) error
}

type categoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

// --- Implementation ---

func toCategoryResponse(c model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func (s *categoryService) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	res := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, toCategoryResponse(c))
	}
	return res, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req CreateCategoryRequest) (*CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name must not be empty", ErrInvalidInput)
	}

	var existing model.Category
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: category %q", ErrDuplicate, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	category := model.Category{Name: name, Description: req.Description}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return s.logAction(tx, userID, model.ActionCreateCategory, category.ID.String(), category.Name, req)
	})
	if err != nil {
		return nil, err
	}

	resp := toCategoryResponse(category)
	return &resp, nil
}

// DeleteCategory refuses to remove a category that is still referenced by at
// least one resource. The guard lives here at the boundary, not as a database
// constraint, because Resource.Category is a free-form name column.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, id string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: invalid category id", ErrInvalidInput)
	}

	var category model.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category", ErrNotFound)
		}
		return fmt.Errorf("database error: %w", err)
	}

	var inUse int64
	if err := s.db.WithContext(ctx).Model(&model.Resource{}).
		Where("category = ?", category.Name).Count(&inUse).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: category %q is referenced by %d resource(s)", ErrInUse, category.Name, inUse)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return s.logAction(tx, userID, model.ActionDeleteCategory, category.ID.String(), category.Name, map[string]bool{"deleted": true})
	})
}

func (s *categoryService) logAction(tx *gorm.DB, userID, action, entityID, entityName string, payload interface{}) error {
	var uid *uuid.UUID
	if parsed, err := uuid.Parse(userID); err == nil {
		uid = &parsed
	}

	details, _ := json.Marshal(payload)
	audit := &model.AuditLog{
		UserID:     uid,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(details),
	}
	if err := tx.Create(audit).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
