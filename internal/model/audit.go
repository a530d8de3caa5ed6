package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateResource     = "CREATE_RESOURCE"
	ActionUpdateResource     = "UPDATE_RESOURCE"
	ActionDeleteResource     = "DELETE_RESOURCE"
	ActionRecordDistribution = "RECORD_DISTRIBUTION"
	ActionUpdateDistribution = "UPDATE_DISTRIBUTION"
	ActionDeleteDistribution = "DELETE_DISTRIBUTION"
	ActionCreateCategory     = "CREATE_CATEGORY"
	ActionDeleteCategory     = "DELETE_CATEGORY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:(gen_random_uuid());primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for automated changes
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"` // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
