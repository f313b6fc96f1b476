package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxUsernameLength = 64

var ErrInvalidRegistration = errors.New("invalid registration input")

func NormalizeUsername(raw string) string {
	username := strings.TrimSpace(raw)
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLength {
		return ""
	}
	for _, char := range username {
		if unicode.IsControl(char) {
			return ""
		}
	}
	return username
}

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

// NormalizeRegistrationInput trims the username and lower-cases the email.
// Passwords are kept byte-for-byte.
func NormalizeRegistrationInput(usernameRaw string, passwordRaw string, emailRaw string) (string, string, string, error) {
	username := NormalizeUsername(usernameRaw)
	if username == "" {
		return "", "", "", errors.Join(ErrInvalidRegistration, errors.New("username is required"))
	}
	email := NormalizeAuthEmail(emailRaw)
	if email == "" {
		return "", "", "", errors.Join(ErrInvalidRegistration, errors.New("a valid email is required"))
	}
	if err := ValidatePassword(passwordRaw); err != nil {
		return "", "", "", errors.Join(ErrInvalidRegistration, err)
	}
	return username, passwordRaw, email, nil
}
