package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Donation records money received from a donor, optionally earmarked for a project
type Donation struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	DonorName string          `gorm:"type:varchar(255);not null" json:"donor_name"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency  string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	ProjectID *uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	Project   *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Notes     string          `gorm:"type:text" json:"notes"`
	DonatedAt time.Time       `json:"donated_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// GrantStatus constants
const (
	GrantApplied   = "applied"
	GrantAwarded   = "awarded"
	GrantDisbursed = "disbursed"
	GrantClosed    = "closed"
)

// Grant tracks institutional funding through its application lifecycle
type Grant struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Grantor     string          `gorm:"type:varchar(255);not null" json:"grantor"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency    string          `gorm:"type:varchar(10);default:'USD'" json:"currency"`
	Status      string          `gorm:"type:varchar(20);default:'applied';index" json:"status"`
	ProjectID   *uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	Project     *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   *time.Time      `json:"period_end"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (g *Grant) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Partner is an external organization the foundation works with
type Partner struct {
	ID           uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Type         string    `gorm:"type:varchar(50)" json:"type"` // supplier, funder, implementing
	ContactEmail string    `gorm:"type:varchar(255)" json:"contact_email"`
	ContactPhone string    `gorm:"type:varchar(20)" json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
