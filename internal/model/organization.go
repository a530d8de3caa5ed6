package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Department is an organizational unit of the foundation
type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Staff is the HR record of a foundation employee. It is distinct from User,
// which is the sign-in account; not every staff member has an account.
type Staff struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	FullName     string         `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"type:varchar(20)" json:"phone"`
	Position     string         `gorm:"type:varchar(100)" json:"position"`
	DepartmentID *uuid.UUID     `gorm:"type:uuid;index" json:"department_id"`
	Department   *Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	HiredAt      time.Time      `json:"hired_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
