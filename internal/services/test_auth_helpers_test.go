package services

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/cardiocheck/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func openServicesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cardiocheck-services.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})
	return database
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthServiceWithCost(db.NewUserRepository(openServicesTestDB(t)), bcrypt.MinCost)
}
