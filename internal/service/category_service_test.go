package service

import (
	"context"
	"testing"

	"angaza/internal/access"
	"angaza/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_DuplicateNameRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	userID := seedUser(t, db, "admin-cat", access.RoleSystemAdmin)

	created, err := svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{
		Name: "Food", Description: "Staples and dry goods",
	})
	require.NoError(t, err)
	assert.Equal(t, "Food", created.Name)

	_, err = svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: "Food"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	var audits []model.AuditLog
	require.NoError(t, db.Where("action = ?", model.ActionCreateCategory).Find(&audits).Error)
	assert.Len(t, audits, 1)
}

func TestDeleteCategory_RefusedWhileInUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	inv := newInventoryService(db)
	userID := seedUser(t, db, "admin-cat2", access.RoleSystemAdmin)

	category, err := svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: "Medical"})
	require.NoError(t, err)

	_, err = inv.CreateResource(context.Background(), userID, CreateResourceRequest{
		Name: "Gauze", Category: "Medical", Quantity: 10, Unit: "roll", UnitValue: "1.20",
	})
	require.NoError(t, err)

	err = svc.DeleteCategory(context.Background(), userID, category.ID)
	require.ErrorIs(t, err, ErrInUse)

	remaining, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 1, "a rejected delete must leave the category in place")
}

func TestDeleteCategory_UnreferencedSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	userID := seedUser(t, db, "admin-cat3", access.RoleSystemAdmin)

	category, err := svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: "Obsolete"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), userID, category.ID))

	remaining, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)

	err = svc.DeleteCategory(context.Background(), userID, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCategories_SortedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	userID := seedUser(t, db, "admin-cat4", access.RoleSystemAdmin)

	for _, name := range []string{"Shelter", "Food", "Medical"} {
		_, err := svc.CreateCategory(context.Background(), userID, CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Medical", categories[1].Name)
	assert.Equal(t, "Shelter", categories[2].Name)
}
