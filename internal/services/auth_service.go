package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/terraincognita07/cardiocheck/internal/db"
	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateCredential = errors.New("username or email already exists")
	ErrInvalidCredential   = errors.New("invalid username or password")
	ErrUserNotFound        = errors.New("user not found")
)

type AuthUserRepository interface {
	ExistsByUsernameOrEmail(username string, email string) (bool, error)
	FindByUsername(username string) (models.User, error)
	Create(user *models.User) error
	UpdatePasswordHash(userID uint, passwordHash string) error
}

type AuthService struct {
	users     AuthUserRepository
	hashCost  int
	now       func() time.Time
	dummyHash []byte
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return NewAuthServiceWithCost(users, bcrypt.DefaultCost)
}

// NewAuthServiceWithCost lets tests trade hash strength for speed.
func NewAuthServiceWithCost(users AuthUserRepository, cost int) *AuthService {
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("cardiocheck-timing-equalizer"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt cost %d: %v", cost, err))
	}
	return &AuthService{
		users:     users,
		hashCost:  cost,
		now:       time.Now,
		dummyHash: dummyHash,
	}
}

// Register stores a new user with a bcrypt hash of password.
func (service *AuthService) Register(usernameRaw string, password string, emailRaw string) (models.User, error) {
	username, password, email, err := NormalizeRegistrationInput(usernameRaw, password, emailRaw)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return models.User{}, ErrDuplicateCredential
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return models.User{}, ErrDuplicateCredential
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "code", logging.AUTH, "user_id", user.ID)
	return user, nil
}

// Authenticate returns the stored user when password matches its hash.
// Unknown usernames still pay for one bcrypt comparison.
func (service *AuthService) Authenticate(usernameRaw string, password string) (models.User, error) {
	username := NormalizeUsername(usernameRaw)
	if username == "" || ValidatePassword(password) != nil {
		return models.User{}, ErrInvalidCredential
	}

	user, err := service.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(service.dummyHash, []byte(password))
			return models.User{}, ErrInvalidCredential
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	if user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredential
	}
	return user, nil
}

// SetPassword replaces the stored hash for username. Used by the operator CLI.
func (service *AuthService) SetPassword(usernameRaw string, password string) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	username := NormalizeUsername(usernameRaw)
	if username == "" {
		return ErrUserNotFound
	}

	user, err := service.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordHash(user.ID, string(hash)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password replaced", "code", logging.AUTH, "user_id", user.ID)
	return nil
}
