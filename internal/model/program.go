package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Program is a long-running initiative (e.g. "Food Security") under which
// individual projects are carried out.
type Program struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Program) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectStatus constants
const (
	ProjectPlanned   = "planned"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectOnHold    = "on_hold"
)

// Project is a budgeted, time-bounded piece of work within a program
type Project struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	ProgramID    *uuid.UUID      `gorm:"type:uuid;index" json:"program_id"`
	Program      *Program        `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	DepartmentID *uuid.UUID      `gorm:"type:uuid;index" json:"department_id"`
	Department   *Department     `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Budget       decimal.Decimal `gorm:"type:decimal(14,2)" json:"budget"`
	Status       string          `gorm:"type:varchar(20);default:'planned';index" json:"status"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      *time.Time      `json:"end_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
