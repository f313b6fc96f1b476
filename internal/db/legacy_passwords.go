package db

import (
	"fmt"
	"log/slog"

	"github.com/terraincognita07/cardiocheck/internal/logging"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxBcryptPasswordBytes = 72

type legacyCredential struct {
	ID       uint   `gorm:"column:id"`
	Password string `gorm:"column:password"`
}

// UpgradeLegacyPasswords hashes plaintext passwords left in the users.password column by
// databases created before password_hash existed, then blanks the plaintext value.
func UpgradeLegacyPasswords(database *gorm.DB) (int, error) {
	var legacy []legacyCredential
	if err := database.
		Table("users").
		Select("id", "password").
		Where("password_hash = '' AND password IS NOT NULL AND password <> ''").
		Scan(&legacy).Error; err != nil {
		return 0, fmt.Errorf("load legacy credentials: %w", err)
	}
	if len(legacy) == 0 {
		return 0, nil
	}

	err := database.Transaction(func(tx *gorm.DB) error {
		for _, credential := range legacy {
			if len(credential.Password) > maxBcryptPasswordBytes {
				slog.Warn("legacy password too long to hash, reset required", "code", logging.AUTH, "user_id", credential.ID)
				if err := tx.Table("users").Where("id = ?", credential.ID).Update("password", "").Error; err != nil {
					return fmt.Errorf("clear legacy password for user %d: %w", credential.ID, err)
				}
				continue
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(credential.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash legacy password for user %d: %w", credential.ID, err)
			}
			if err := tx.Table("users").Where("id = ?", credential.ID).Updates(map[string]any{
				"password_hash": string(hash),
				"password":      "",
			}).Error; err != nil {
				return fmt.Errorf("store upgraded password for user %d: %w", credential.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Warn("plaintext passwords upgraded to bcrypt", "code", logging.AUTH, "users", len(legacy))
	return len(legacy), nil
}
