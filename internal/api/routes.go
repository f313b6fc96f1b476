package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/login", handler.ShowLoginPage)
	app.Get("/register", handler.ShowRegisterPage)
	app.Get("/", handler.AuthRequired, handler.ShowHome)
	app.Get("/home", handler.AuthRequired, handler.ShowHome)
	app.Get("/predict", handler.AuthRequired, handler.ShowPredict)
	app.Get("/eda", handler.AuthRequired, handler.ShowEDA)
	app.Get("/history", handler.AuthRequired, handler.ShowHistory)
	app.Get("/feedback", handler.AuthRequired, handler.ShowFeedback)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Post("/predict", handler.AuthRequired, handler.Predict)
	api.Post("/bmi", handler.AuthRequired, handler.CalculateBMI)
	api.Get("/eda", handler.AuthRequired, handler.GetAnalysis)
	api.Get("/history", handler.AuthRequired, handler.GetHistory)
	api.Get("/history/export", handler.AuthRequired, handler.ExportHistoryCSV)
	api.Get("/history/export.json", handler.AuthRequired, handler.ExportHistoryJSON)
	api.Post("/feedback", handler.AuthRequired, handler.SubmitFeedback)
	api.Get("/feedback", handler.AuthRequired, handler.ListFeedback)
	api.Get("/model", handler.AuthRequired, handler.GetModelInfo)
}
