package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BeneficiaryStatus constants
const (
	BeneficiaryActive   = "active"
	BeneficiaryInactive = "inactive"
)

// Beneficiary is a person or household registered to receive support
type Beneficiary struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	FullName      string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone         string         `gorm:"type:varchar(20)" json:"phone"`
	Location      string         `gorm:"type:varchar(255)" json:"location"`
	HouseholdSize int            `gorm:"type:int;default:1" json:"household_size"`
	Status        string         `gorm:"type:varchar(20);default:'active';index" json:"status"`
	ProgramID     *uuid.UUID     `gorm:"type:uuid;index" json:"program_id"`
	Program       *Program       `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
	RegisteredAt  time.Time      `json:"registered_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Beneficiary) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
