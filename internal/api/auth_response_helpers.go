package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/metrics"
)

// respondAuthError sends plain form posts back to the matching page with the
// message in a flash cookie; JSON and htmx callers get apiError.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string) error {
	if strings.HasPrefix(c.Path(), "/api/auth/") && !acceptsJSON(c) && !isHTMX(c) {
		flash := FlashPayload{AuthError: message}
		switch c.Path() {
		case "/api/auth/register":
			flash.RegisterUsername = c.FormValue("username")
			flash.RegisterEmail = c.FormValue("email")
			handler.setFlashCookie(c, flash)
			return c.Redirect("/register", fiber.StatusSeeOther)
		default:
			flash.LoginUsername = c.FormValue("username")
			handler.setFlashCookie(c, flash)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
	}
	return apiError(c, status, message)
}

// respondFeedbackError mirrors respondAuthError for the feedback form.
func (handler *Handler) respondFeedbackError(c *fiber.Ctx, status int, message string) error {
	if !acceptsJSON(c) && !isHTMX(c) {
		handler.setFlashCookie(c, FlashPayload{FeedbackError: message})
		return c.Redirect("/feedback", fiber.StatusSeeOther)
	}
	return apiError(c, status, message)
}

// RateLimited answers requests rejected by the router-level limiter in the
// same shape as the login limiter.
func (handler *Handler) RateLimited(c *fiber.Ctx) error {
	if c.Path() == "/api/auth/register" {
		handler.metrics.ObserveRegistration(metrics.OutcomeLimited)
	} else {
		handler.metrics.ObserveLogin(metrics.OutcomeLimited)
	}
	return handler.respondAuthError(c, fiber.StatusTooManyRequests, "too many login attempts")
}
