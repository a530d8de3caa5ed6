package service

import (
	"context"
	"errors"
	"testing"

	"angaza/internal/access"
	"angaza/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createResource(t *testing.T, svc InventoryService, userID string, quantity int) *ResourceResponse {
	t.Helper()

	resource, err := svc.CreateResource(context.Background(), userID, CreateResourceRequest{
		Name:      "Maize flour 25kg",
		Category:  "Food",
		Quantity:  quantity,
		Unit:      "bag",
		UnitValue: "18.50",
	})
	require.NoError(t, err)
	return resource
}

func TestRecordDistribution_DecrementsStockAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "field1", access.RoleFieldOfficer)

	resource := createResource(t, svc, userID, 10)

	dist, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   4,
		Recipient:  "Kibera camp",
		Location:   "Nairobi",
	})
	require.NoError(t, err)

	assert.Equal(t, model.DistributionPending, dist.Status)
	assert.Equal(t, 4, dist.Quantity)
	assert.Equal(t, "18.50", dist.UnitValue)
	assert.Equal(t, "74.00", dist.TotalValue)
	assert.Equal(t, resource.Name, dist.ResourceName)

	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, after.Quantity)

	// one IN movement from creation, one OUT from the distribution
	var movements []model.StockMovement
	require.NoError(t, db.Order("created_at ASC").Find(&movements).Error)
	require.Len(t, movements, 2)
	assert.Equal(t, model.StockIn, movements[0].Direction)
	assert.Equal(t, 10, movements[0].StockAfter)
	assert.Equal(t, model.StockOut, movements[1].Direction)
	assert.Equal(t, 4, movements[1].QuantityMoved)
	assert.Equal(t, 6, movements[1].StockAfter)
	require.NotNil(t, movements[1].DistributionID)
	assert.Equal(t, dist.ID, movements[1].DistributionID.String())

	var audits []model.AuditLog
	require.NoError(t, db.Where("action = ?", model.ActionRecordDistribution).Find(&audits).Error)
	require.Len(t, audits, 1)
	require.NotNil(t, audits[0].UserID)
	assert.Equal(t, userID, audits[0].UserID.String())
}

func TestRecordDistribution_InsufficientStockLeavesNoTrace(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "field2", access.RoleFieldOfficer)

	resource := createResource(t, svc, userID, 3)

	_, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   5,
		Recipient:  "Kibera camp",
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	after, getErr := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, getErr)
	assert.Equal(t, 3, after.Quantity, "stock must be untouched after a rejected request")

	var count int64
	require.NoError(t, db.Model(&model.Distribution{}).Count(&count).Error)
	assert.Zero(t, count, "no distribution row may survive the rollback")

	require.NoError(t, db.Model(&model.StockMovement{}).Where("direction = ?", model.StockOut).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordDistribution_RejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "field3", access.RoleFieldOfficer)

	resource := createResource(t, svc, userID, 10)

	for _, quantity := range []int{0, -2} {
		_, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
			ResourceID: resource.ID,
			Quantity:   quantity,
			Recipient:  "anyone",
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "quantity %d", quantity)
	}

	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity)
}

func TestRecordDistribution_ExactStockReachesZero(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "field4", access.RoleFieldOfficer)

	resource := createResource(t, svc, userID, 7)

	_, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   7,
		Recipient:  "Turkana outreach",
	})
	require.NoError(t, err)

	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.Quantity)

	out, err := svc.OutOfStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, resource.ID, out[0].ID)
}

func TestRecordDistribution_UnknownResource(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "field5", access.RoleFieldOfficer)

	_, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: "2b8e9f04-50a1-47c1-9866-1d1a36a97c04",
		Quantity:   1,
		Recipient:  "anyone",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: "not-a-uuid",
		Quantity:   1,
		Recipient:  "anyone",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateDistributionStatus_CancelRestoresStock(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "manager1", access.RoleProgramManager)

	resource := createResource(t, svc, userID, 10)
	dist, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   4,
		Recipient:  "Kibera camp",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDistributionStatus(context.Background(), userID, dist.ID, UpdateDistributionRequest{
		Status: model.DistributionCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DistributionCancelled, updated.Status)

	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, after.Quantity, "cancellation must return the quantity to stock")

	// a cancelled distribution is terminal
	_, err = svc.UpdateDistributionStatus(context.Background(), userID, dist.ID, UpdateDistributionRequest{
		Status: model.DistributionCompleted,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateDistributionStatus_CompleteKeepsStock(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "manager2", access.RoleProgramManager)

	resource := createResource(t, svc, userID, 10)
	dist, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   4,
		Recipient:  "Kibera camp",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDistributionStatus(context.Background(), userID, dist.ID, UpdateDistributionRequest{
		Status: model.DistributionCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DistributionCompleted, updated.Status)

	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, after.Quantity)

	// same-status update is a no-op, not an error
	again, err := svc.UpdateDistributionStatus(context.Background(), userID, dist.ID, UpdateDistributionRequest{
		Status: model.DistributionCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DistributionCompleted, again.Status)
}

func TestDeleteDistribution_PendingRestocksCompletedRefuses(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "manager3", access.RoleProgramManager)

	resource := createResource(t, svc, userID, 10)

	pending, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   3,
		Recipient:  "camp A",
	})
	require.NoError(t, err)

	completed, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
		ResourceID: resource.ID,
		Quantity:   2,
		Recipient:  "camp B",
	})
	require.NoError(t, err)
	_, err = svc.UpdateDistributionStatus(context.Background(), userID, completed.ID, UpdateDistributionRequest{
		Status: model.DistributionCompleted,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDistribution(context.Background(), userID, pending.ID))
	after, err := svc.GetResource(context.Background(), resource.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Quantity, "deleting a pending distribution restores its quantity")

	err = svc.DeleteDistribution(context.Background(), userID, completed.ID)
	assert.ErrorIs(t, err, ErrInvalidInput, "completed distributions are immutable history")

	_, err = svc.GetDistribution(context.Background(), pending.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLowStock_ThresholdBoundaries(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "admin1", access.RoleSystemAdmin)

	mk := func(name string, quantity int) {
		_, err := svc.CreateResource(context.Background(), userID, CreateResourceRequest{
			Name:      name,
			Category:  "Medical",
			Quantity:  quantity,
			Unit:      "box",
			UnitValue: "5.00",
		})
		require.NoError(t, err)
	}
	mk("empty", 0)
	mk("scarce", 1)
	mk("boundary", 10)
	mk("plenty", 11)

	low, err := svc.LowStock(context.Background(), 10)
	require.NoError(t, err)

	names := make([]string, 0, len(low))
	for _, r := range low {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, []string{"scarce", "boundary"}, names,
		"low stock is 0 < quantity <= threshold; zero-stock items are out of stock, not low")

	out, err := svc.OutOfStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "empty", out[0].Name)

	_, err = svc.LowStock(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateResource_QuantityCorrectionHitsLedger(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "admin2", access.RoleSystemAdmin)

	resource := createResource(t, svc, userID, 10)

	newQty := 6
	updated, err := svc.UpdateResource(context.Background(), userID, resource.ID, UpdateResourceRequest{
		Name:      resource.Name,
		Category:  resource.Category,
		Quantity:  &newQty,
		Unit:      resource.Unit,
		UnitValue: "20.00",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.Quantity)
	assert.Equal(t, "20.00", updated.UnitValue)

	var movements []model.StockMovement
	require.NoError(t, db.Where("direction = ?", model.StockOut).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, 4, movements[0].QuantityMoved)
	assert.Equal(t, 6, movements[0].StockAfter)
	assert.Nil(t, movements[0].DistributionID, "manual corrections carry no distribution reference")
}

func TestDeleteResource_SoftDeletes(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "admin3", access.RoleSystemAdmin)

	resource := createResource(t, svc, userID, 5)
	require.NoError(t, svc.DeleteResource(context.Background(), userID, resource.ID))

	_, err := svc.GetResource(context.Background(), resource.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// row survives for history
	var raw model.Resource
	err = db.Unscoped().First(&raw, "id = ?", resource.ID).Error
	require.NoError(t, err)
	assert.True(t, raw.DeletedAt.Valid)
}

func TestCreateResource_RejectsBadUnitValue(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "admin4", access.RoleSystemAdmin)

	for _, unitValue := range []string{"abc", "-1.00"} {
		_, err := svc.CreateResource(context.Background(), userID, CreateResourceRequest{
			Name:      "Tarpaulin",
			Category:  "Shelter",
			Quantity:  1,
			Unit:      "sheet",
			UnitValue: unitValue,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "unit_value %q", unitValue)
	}
}

func TestListDistributions_FilterByCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)
	userID := seedUser(t, db, "manager4", access.RoleProgramManager)

	food, err := svc.CreateResource(context.Background(), userID, CreateResourceRequest{
		Name: "Rice 10kg", Category: "Food", Quantity: 20, Unit: "bag", UnitValue: "12.00",
	})
	require.NoError(t, err)
	medical, err := svc.CreateResource(context.Background(), userID, CreateResourceRequest{
		Name: "First aid kit", Category: "Medical", Quantity: 20, Unit: "kit", UnitValue: "30.00",
	})
	require.NoError(t, err)

	for _, id := range []string{food.ID, food.ID, medical.ID} {
		_, err := svc.RecordDistribution(context.Background(), userID, RecordDistributionRequest{
			ResourceID: id, Quantity: 1, Recipient: "camp",
		})
		require.NoError(t, err)
	}

	all, total, err := svc.ListDistributions(context.Background(), 1, 20, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	foodOnly, total, err := svc.ListDistributions(context.Background(), 1, 20, "Food")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, d := range foodOnly {
		assert.Equal(t, food.ID, d.ResourceID)
	}
}

func TestGetResource_DatabaseErrorIsNotNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newInventoryService(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.GetResource(context.Background(), "2b8e9f04-50a1-47c1-9866-1d1a36a97c04")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "a failed store read must not masquerade as missing data")
	assert.False(t, errors.Is(err, gorm.ErrRecordNotFound))
}
