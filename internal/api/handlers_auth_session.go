package api

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/mailer"
	"github.com/terraincognita07/cardiocheck/internal/metrics"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return input, err
	}
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	return input, nil
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials, err := parseCredentials(c)
	if err != nil {
		handler.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.auth.Register(credentials.Username, credentials.Password, credentials.Email)
	switch {
	case errors.Is(err, services.ErrPasswordTooLong):
		handler.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		return handler.respondAuthError(c, fiber.StatusBadRequest, "password too long")
	case errors.Is(err, services.ErrInvalidRegistration):
		handler.metrics.ObserveRegistration(metrics.OutcomeInvalid)
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrDuplicateCredential):
		handler.metrics.ObserveRegistration(metrics.OutcomeDuplicate)
		return handler.respondAuthError(c, fiber.StatusConflict, "username or email already exists")
	case err != nil:
		handler.metrics.ObserveRegistration(metrics.OutcomeFailure)
		slog.Error("registration failed", "code", logging.AUTH, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}
	handler.metrics.ObserveRegistration(metrics.OutcomeSuccess)

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":       true,
			"username": user.Username,
			"email":    user.Email,
		})
	}
	handler.setFlashCookie(c, FlashPayload{
		AuthSuccess:   "auth.success.registered",
		LoginUsername: user.Username,
	})
	return redirectOrJSON(c, "/login")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := time.Now()
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, now) {
		handler.metrics.ObserveLogin(metrics.OutcomeLimited)
		return handler.respondAuthError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	credentials, err := parseCredentials(c)
	if err != nil {
		handler.metrics.ObserveLogin(metrics.OutcomeInvalid)
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.login.Login(c.UserContext(), credentials.Username, credentials.Password)
	if errors.Is(err, services.ErrInvalidCredential) {
		handler.loginLimiter.recordFailure(limiterKey, now)
		handler.metrics.ObserveLogin(metrics.OutcomeFailure)
		slog.Info("login rejected", "code", logging.AUTH, "ip", limiterKey)
		return handler.respondAuthError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		handler.metrics.ObserveLogin(metrics.OutcomeFailure)
		slog.Error("login failed", "code", logging.AUTH, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.setAuthCookie(c, result.User); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.metrics.ObserveLogin(metrics.OutcomeSuccess)

	notification, noticeKey := notificationOutcome(result.NotificationErr)
	handler.metrics.ObserveLoginNotification(notification)

	if acceptsJSON(c) {
		payload := fiber.Map{
			"ok":           true,
			"username":     result.User.Username,
			"email":        result.User.Email,
			"notification": notification,
		}
		if result.NotificationErr != nil {
			payload["warning"] = translateMessage(currentMessages(c), noticeKey)
		}
		return c.JSON(payload)
	}

	flash := FlashPayload{AuthSuccess: "auth.success.login"}
	if result.NotificationErr != nil {
		flash.MailWarning = noticeKey
	} else {
		flash.MailNotice = noticeKey
	}
	handler.setFlashCookie(c, flash)
	return redirectOrJSON(c, "/")
}

// notificationOutcome maps the login email result to a metrics outcome and a message key.
func notificationOutcome(err error) (string, string) {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess, "mail.notice.sent"
	case errors.Is(err, mailer.ErrMailConfigMissing):
		return metrics.OutcomeSkipped, "mail.warning.not_configured"
	case errors.Is(err, mailer.ErrMailAuthRejected):
		return metrics.OutcomeFailure, "mail.warning.auth_rejected"
	default:
		return metrics.OutcomeFailure, "mail.warning.transport"
	}
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	if session, ok := currentSession(c); ok {
		slog.Info("user logged out", "code", logging.AUTH, "user_id", session.UserID)
	}
	if isHTMX(c) {
		c.Set("HX-Redirect", "/login")
		return c.SendStatus(fiber.StatusOK)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
