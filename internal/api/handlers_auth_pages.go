package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if handler.redirectAuthenticatedSession(c) {
		return nil
	}

	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "login", fiber.Map{
		"Title":       localizedPageTitle(messages, "meta.title.login", "CardioCheck | Login"),
		"ErrorText":   localizedError(messages, flash.AuthError),
		"SuccessKey":  flash.AuthSuccess,
		"Username":    flash.LoginUsername,
		"HideNavMenu": true,
	})
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	if handler.redirectAuthenticatedSession(c) {
		return nil
	}

	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "register", fiber.Map{
		"Title":       localizedPageTitle(messages, "meta.title.register", "CardioCheck | Register"),
		"ErrorText":   localizedError(messages, flash.AuthError),
		"Username":    flash.RegisterUsername,
		"Email":       flash.RegisterEmail,
		"HideNavMenu": true,
	})
}

// redirectAuthenticatedSession sends a logged-in visitor to the home page.
func (handler *Handler) redirectAuthenticatedSession(c *fiber.Ctx) bool {
	if handler.optionalSession(c) == nil {
		return false
	}
	_ = c.Redirect("/", fiber.StatusSeeOther)
	return true
}
