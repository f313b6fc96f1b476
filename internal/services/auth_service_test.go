package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/cardiocheck/internal/db"
	"github.com/terraincognita07/cardiocheck/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestAuthServiceRegisterRejectsDuplicates(t *testing.T) {
	service := newTestAuthService(t)

	user, err := service.Register("alice", "pw123", "alice@x.com")
	if err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected stored user to have an id")
	}
	if user.PasswordHash == "pw123" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")) != nil {
		t.Fatal("expected password to be stored as a bcrypt hash")
	}

	if _, err := service.Register("alice", "other", "alice2@x.com"); !errors.Is(err, ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential for duplicate username, got %v", err)
	}
	if _, err := service.Register("bob", "pw456", "alice@x.com"); !errors.Is(err, ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential for duplicate email, got %v", err)
	}
	if _, err := service.Register("carol", "pw789", " ALICE@X.COM "); !errors.Is(err, ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential for duplicate email in different case, got %v", err)
	}
}

func TestAuthServiceRegisterValidatesInput(t *testing.T) {
	service := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		email    string
	}{
		{name: "empty username", username: "   ", password: "pw", email: "a@x.com"},
		{name: "empty password", username: "alice", password: "", email: "a@x.com"},
		{name: "invalid email", username: "alice", password: "pw", email: "not-an-email"},
		{name: "password over bcrypt limit", username: "alice", password: string(make([]byte, 73)), email: "a@x.com"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Register(testCase.username, testCase.password, testCase.email)
			if !errors.Is(err, ErrInvalidRegistration) {
				t.Fatalf("expected ErrInvalidRegistration, got %v", err)
			}
		})
	}
}

func TestAuthServiceAuthenticateReturnsEmailOnlyForMatchingPair(t *testing.T) {
	service := newTestAuthService(t)

	if _, err := service.Register("alice", "pw123", "alice@x.com"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := service.Register("bob", "pw456", "bob@x.com"); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	user, err := service.Authenticate("alice", "pw123")
	if err != nil {
		t.Fatalf("expected alice to authenticate, got %v", err)
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("expected alice@x.com, got %q", user.Email)
	}

	failures := []struct {
		username string
		password string
	}{
		{username: "alice", password: "wrong"},
		{username: "alice", password: "pw456"},
		{username: "bob", password: "pw123"},
		{username: "nobody", password: "pw123"},
		{username: "Alice", password: "pw123"},
		{username: "", password: ""},
	}
	for _, failure := range failures {
		if _, err := service.Authenticate(failure.username, failure.password); !errors.Is(err, ErrInvalidCredential) {
			t.Fatalf("Authenticate(%q, %q) expected ErrInvalidCredential, got %v", failure.username, failure.password, err)
		}
	}
}

func TestAuthServiceSetPassword(t *testing.T) {
	service := newTestAuthService(t)

	if _, err := service.Register("alice", "pw123", "alice@x.com"); err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if err := service.SetPassword("alice", "fresh-secret"); err != nil {
		t.Fatalf("SetPassword() unexpected error: %v", err)
	}
	if _, err := service.Authenticate("alice", "pw123"); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := service.Authenticate("alice", "fresh-secret"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}

	if err := service.SetPassword("ghost", "whatever"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := service.SetPassword("alice", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
}

type raceUserRepo struct{}

func (raceUserRepo) ExistsByUsernameOrEmail(string, string) (bool, error) { return false, nil }

func (raceUserRepo) FindByUsername(string) (models.User, error) {
	return models.User{}, gorm.ErrRecordNotFound
}

func (raceUserRepo) Create(*models.User) error { return db.ErrUniqueViolation }

func (raceUserRepo) UpdatePasswordHash(uint, string) error { return nil }

func TestAuthServiceRegisterMapsInsertRaceToDuplicate(t *testing.T) {
	service := NewAuthServiceWithCost(raceUserRepo{}, bcrypt.MinCost)

	if _, err := service.Register("alice", "pw123", "alice@x.com"); !errors.Is(err, ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential when insert hits unique constraint, got %v", err)
	}
}
