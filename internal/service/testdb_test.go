package service

import (
	"testing"

	"angaza/internal/database"
	"angaza/internal/model"
	"angaza/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with the full schema migrated
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newInventoryService wires the full repository stack over db, with no hub
func newInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewResourceRepository(db),
		repository.NewDistributionRepository(db),
		repository.NewStockMovementRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

// seedUser inserts a user and returns its ID for audit attribution
func seedUser(t *testing.T, db *gorm.DB, username, role string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{
		Username: username,
		Email:    username + "@angaza.org",
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID.String()
}
