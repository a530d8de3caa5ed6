package service

import (
	"context"
	"math"
	"sort"

	"angaza/internal/model"
	"angaza/internal/repository"

	"github.com/shopspring/decimal"
)

// StatisticsService computes stock-health views by folding over resource and
// distribution records. Store errors propagate to the caller; "no data" and
// "store failed" must stay distinguishable.
type StatisticsService interface {
	CategoryStats(ctx context.Context, limit int, categoryFilter string) ([]model.CategoryStat, error)
	DistributionStats(ctx context.Context, categoryFilter string) (model.DistributionStats, error)
}

type statisticsService struct {
	resourceRepo     repository.ResourceRepository
	distributionRepo repository.DistributionRepository
}

func NewStatisticsService(
	resourceRepo repository.ResourceRepository,
	distributionRepo repository.DistributionRepository,
) StatisticsService {
	return &statisticsService{
		resourceRepo:     resourceRepo,
		distributionRepo: distributionRepo,
	}
}

// CategoryStats rolls up every category present among resources: stock value,
// resource count and quantity from the resources, used quantity from the
// distributions attributed via each distribution's resource. Percentage is
// round(100*used/(used+remaining)) and 0 when both terms are 0. Results sort
// descending by used quantity and truncate to limit.
func (s *statisticsService) CategoryStats(ctx context.Context, limit int, categoryFilter string) ([]model.CategoryStat, error) {
	resources, err := s.resourceRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	distributions, err := s.distributionRepo.ListAll(ctx, "")
	if err != nil {
		return nil, err
	}

	resourceCategory := make(map[string]string, len(resources))
	stats := make(map[string]*model.CategoryStat)
	for _, r := range resources {
		resourceCategory[r.ID.String()] = r.Category
		stat, ok := stats[r.Category]
		if !ok {
			stat = &model.CategoryStat{Category: r.Category}
			stats[r.Category] = stat
		}
		stat.ResourceCount++
		stat.TotalQuantity += r.Quantity
		stat.TotalValue = stat.TotalValue.Add(r.UnitValue.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}

	for _, d := range distributions {
		category, ok := resourceCategory[d.ResourceID.String()]
		if !ok {
			continue // resource deleted since; nothing to attribute to
		}
		if stat, ok := stats[category]; ok {
			stat.UsedQuantity += d.Quantity
		}
	}

	result := make([]model.CategoryStat, 0, len(stats))
	for _, stat := range stats {
		remaining := stat.TotalQuantity - stat.UsedQuantity
		if remaining < 0 {
			remaining = 0
		}
		stat.RemainingQuantity = remaining

		denominator := stat.UsedQuantity + remaining
		if denominator > 0 {
			stat.UsagePercent = int(math.Round(100 * float64(stat.UsedQuantity) / float64(denominator)))
		}

		if categoryFilter != "" && stat.Category != categoryFilter {
			continue
		}
		result = append(result, *stat)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].UsedQuantity != result[j].UsedQuantity {
			return result[i].UsedQuantity > result[j].UsedQuantity
		}
		return result[i].Category < result[j].Category
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DistributionStats folds over (optionally category-filtered) distributions
func (s *statisticsService) DistributionStats(ctx context.Context, categoryFilter string) (model.DistributionStats, error) {
	distributions, err := s.distributionRepo.ListAll(ctx, categoryFilter)
	if err != nil {
		return model.DistributionStats{}, err
	}

	stats := model.DistributionStats{ValueDistributed: decimal.Zero}
	for _, d := range distributions {
		stats.TotalDistributions++
		stats.QuantitiesDistributed += d.Quantity
		stats.ValueDistributed = stats.ValueDistributed.Add(d.TotalValue)
		if d.Status == model.DistributionPending {
			stats.PendingDistributions++
		}
	}
	return stats, nil
}
