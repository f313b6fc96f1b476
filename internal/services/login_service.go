package services

import (
	"context"
	"log/slog"

	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/mailer"
	"github.com/terraincognita07/cardiocheck/internal/models"
)

type LoginResult struct {
	User models.User
	// NotificationErr is set when the confirmation email could not be sent.
	// It never turns a successful login into a failure.
	NotificationErr error
}

type LoginService struct {
	auth     *AuthService
	notifier mailer.Notifier
}

func NewLoginService(auth *AuthService, notifier mailer.Notifier) *LoginService {
	if notifier == nil {
		notifier = mailer.Disabled{}
	}
	return &LoginService{auth: auth, notifier: notifier}
}

func (service *LoginService) Login(ctx context.Context, username string, password string) (LoginResult, error) {
	user, err := service.auth.Authenticate(username, password)
	if err != nil {
		return LoginResult{}, err
	}

	result := LoginResult{User: user}
	if err := service.notifier.NotifyLogin(ctx, user.Email); err != nil {
		slog.Warn("login notification failed",
			"code", logging.MAIL,
			"user_id", user.ID,
			"error", err,
		)
		result.NotificationErr = err
	}
	return result, nil
}
