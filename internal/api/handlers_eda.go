package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ShowEDA(c *fiber.Ctx) error {
	return handler.render(c, "eda", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.eda", "CardioCheck | Data Analysis"),
		"Analysis": handler.analysis,
	})
}

func (handler *Handler) GetAnalysis(c *fiber.Ctx) error {
	return c.JSON(handler.analysis)
}
