package database

import (
	"log"

	"angaza/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs schema migration for all models. Shared with tests, which
// migrate an in-memory database instead of Postgres.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Category{},
		&model.Resource{},
		&model.Distribution{},
		&model.StockMovement{},
		&model.Beneficiary{},
		&model.Donation{},
		&model.Grant{},
		&model.Partner{},
		&model.Program{},
		&model.Project{},
		&model.Department{},
		&model.Staff{},
		&model.AuditLog{},
	)
}
