package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category groups resources for reporting. A category referenced by at
// least one resource cannot be deleted.
type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Resource is a stock-keeping unit held by the foundation. Quantity is
// mutated only by distribution bookkeeping or direct administrative edits.
type Resource struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Category  string          `gorm:"type:varchar(100);index" json:"category"`
	Quantity  int             `gorm:"type:int;default:0;not null" json:"quantity"`
	Unit      string          `gorm:"type:varchar(50)" json:"unit"`
	UnitValue decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// DistributionStatus constants
const (
	DistributionPending   = "pending"
	DistributionCompleted = "completed"
	DistributionCancelled = "cancelled"
)

// Distribution records a quantity of a resource handed out to a recipient.
// ResourceName and UnitValue are snapshots taken at creation time so the
// record stays meaningful if the resource is later edited.
type Distribution struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	ResourceID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"resource_id"`
	Resource      Resource        `gorm:"foreignKey:ResourceID" json:"-"`
	ResourceName  string          `gorm:"type:varchar(255);not null" json:"resource_name"`
	Quantity      int             `gorm:"type:int;not null" json:"quantity"`
	UnitValue     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_value"`
	TotalValue    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_value"`
	Recipient     string          `gorm:"type:varchar(255);not null" json:"recipient"`
	Location      string          `gorm:"type:varchar(255)" json:"location"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Status        string          `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	DistributedAt time.Time       `json:"distributed_at"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (d *Distribution) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// StockDirection constants
const (
	StockIn  = "IN"
	StockOut = "OUT"
)

// StockMovement is the strict ledger of every stock change so the current
// quantity of a resource can always be reconciled against its history.
type StockMovement struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	ResourceID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"resource_id"`
	DistributionID *uuid.UUID `gorm:"type:uuid;index" json:"distribution_id"` // Nullable for manual adjustments
	Direction      string     `gorm:"type:varchar(10);not null" json:"direction"`
	QuantityMoved  int        `gorm:"type:int;not null" json:"quantity_moved"`
	StockAfter     int        `gorm:"type:int;not null" json:"stock_after"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
