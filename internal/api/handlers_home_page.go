package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "home", fiber.Map{
		"Title":        localizedPageTitle(messages, "meta.title.home", "CardioCheck | Home"),
		"Content":      services.Home(),
		"Accuracy":     handler.prediction.Accuracy(),
		"Records":      handler.table.Len(),
		"PositiveRate": handler.analysis.PositiveRate(),
		"SuccessKey":   flash.AuthSuccess,
		"MailNotice":   flash.MailNotice,
		"MailWarning":  flash.MailWarning,
	})
}
