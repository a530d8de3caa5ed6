package model

import "github.com/shopspring/decimal"

// CategoryStat is a derived (not persisted) per-category rollup of resource
// stock and distribution usage.
type CategoryStat struct {
	Category          string          `json:"category"`
	TotalValue        decimal.Decimal `json:"total_value"`
	ResourceCount     int             `json:"resource_count"`
	TotalQuantity     int             `json:"total_quantity"`
	UsedQuantity      int             `json:"used_quantity"`
	RemainingQuantity int             `json:"remaining_quantity"`
	UsagePercent      int             `json:"usage_percent"`
}

// DistributionStats aggregates totals over recorded distributions
type DistributionStats struct {
	TotalDistributions    int             `json:"total_distributions"`
	ValueDistributed      decimal.Decimal `json:"value_distributed"`
	QuantitiesDistributed int             `json:"quantities_distributed"`
	PendingDistributions  int             `json:"pending_distributions"`
}
