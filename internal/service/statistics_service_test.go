package service

import (
	"context"
	"testing"

	"angaza/internal/access"
	"angaza/internal/model"
	"angaza/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStatisticsService(db *gorm.DB) StatisticsService {
	return NewStatisticsService(
		repository.NewResourceRepository(db),
		repository.NewDistributionRepository(db),
	)
}

// seed: Food has two resources (30 left in stock, 10 distributed), Medical
// has one resource with stock and no usage, Shelter is fully distributed.
func seedStatsData(t *testing.T, db *gorm.DB) {
	t.Helper()

	inv := newInventoryService(db)
	userID := seedUser(t, db, "stats", access.RoleSystemAdmin)
	ctx := context.Background()

	mk := func(name, category string, quantity int, unitValue string) string {
		resource, err := inv.CreateResource(ctx, userID, CreateResourceRequest{
			Name: name, Category: category, Quantity: quantity, Unit: "unit", UnitValue: unitValue,
		})
		require.NoError(t, err)
		return resource.ID
	}
	give := func(resourceID string, quantity int) {
		_, err := inv.RecordDistribution(ctx, userID, RecordDistributionRequest{
			ResourceID: resourceID, Quantity: quantity, Recipient: "camp",
		})
		require.NoError(t, err)
	}

	rice := mk("Rice", "Food", 25, "10.00")
	mk("Beans", "Food", 15, "8.00")
	mk("Bandages", "Medical", 50, "2.50")
	tarp := mk("Tarpaulin", "Shelter", 5, "40.00")

	give(rice, 10)
	give(tarp, 5)
}

func TestCategoryStats_Aggregation(t *testing.T) {
	db := newTestDB(t)
	seedStatsData(t, db)
	svc := newStatisticsService(db)

	stats, err := svc.CategoryStats(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, stats, 3)

	byCategory := make(map[string]model.CategoryStat, len(stats))
	for _, s := range stats {
		byCategory[s.Category] = s
	}

	food := byCategory["Food"]
	assert.Equal(t, 2, food.ResourceCount)
	assert.Equal(t, 30, food.TotalQuantity) // current stock after the 10 given out
	assert.Equal(t, 10, food.UsedQuantity)
	assert.Equal(t, 20, food.RemainingQuantity)
	assert.Equal(t, 33, food.UsagePercent) // round(100*10/30)
	assert.Equal(t, "270", food.TotalValue.String()) // 15*10.00 + 15*8.00

	medical := byCategory["Medical"]
	assert.Equal(t, 0, medical.UsedQuantity)
	assert.Equal(t, 50, medical.RemainingQuantity)
	assert.Equal(t, 0, medical.UsagePercent)

	shelter := byCategory["Shelter"]
	assert.Equal(t, 5, shelter.UsedQuantity)
	assert.Equal(t, 0, shelter.RemainingQuantity)
	assert.Equal(t, 100, shelter.UsagePercent)
}

func TestCategoryStats_PercentAlwaysInRange(t *testing.T) {
	db := newTestDB(t)
	seedStatsData(t, db)
	svc := newStatisticsService(db)

	stats, err := svc.CategoryStats(context.Background(), 10, "")
	require.NoError(t, err)

	for _, s := range stats {
		assert.GreaterOrEqual(t, s.UsagePercent, 0, "category %q", s.Category)
		assert.LessOrEqual(t, s.UsagePercent, 100, "category %q", s.Category)
	}
}

func TestCategoryStats_ZeroActivityCategoryReportsZeroPercent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.Resource{
		Name: "Empty shelf", Category: "Misc", Quantity: 0,
	}).Error)
	svc := newStatisticsService(db)

	stats, err := svc.CategoryStats(context.Background(), 10, "")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].UsagePercent, "0/0 must be 0, not NaN or a division failure")
}

func TestCategoryStats_SortLimitAndFilter(t *testing.T) {
	db := newTestDB(t)
	seedStatsData(t, db)
	svc := newStatisticsService(db)

	stats, err := svc.CategoryStats(context.Background(), 2, "")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Food", stats[0].Category, "sorted by used quantity descending")
	assert.Equal(t, "Shelter", stats[1].Category)

	only, err := svc.CategoryStats(context.Background(), 10, "Medical")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Medical", only[0].Category)

	none, err := svc.CategoryStats(context.Background(), 10, "Unknown")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDistributionStats_TotalsAndPending(t *testing.T) {
	db := newTestDB(t)
	seedStatsData(t, db)
	svc := newStatisticsService(db)

	stats, err := svc.DistributionStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalDistributions)
	assert.Equal(t, 15, stats.QuantitiesDistributed)
	assert.Equal(t, 2, stats.PendingDistributions)
	assert.Equal(t, "300", stats.ValueDistributed.String()) // 10*10.00 + 5*40.00

	foodOnly, err := svc.DistributionStats(context.Background(), "Food")
	require.NoError(t, err)
	assert.Equal(t, 1, foodOnly.TotalDistributions)
	assert.Equal(t, 10, foodOnly.QuantitiesDistributed)
}

func TestDistributionStats_EmptyStore(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)

	stats, err := svc.DistributionStats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalDistributions)
	assert.True(t, stats.ValueDistributed.IsZero())
}

// A broken store must surface as an error, never as an empty result.
func TestStatistics_StoreErrorsPropagate(t *testing.T) {
	db := newTestDB(t)
	svc := newStatisticsService(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.CategoryStats(context.Background(), 10, "")
	assert.Error(t, err)

	_, err = svc.DistributionStats(context.Background(), "")
	assert.Error(t, err)
}
