package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/ml"
	"github.com/terraincognita07/cardiocheck/internal/models"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

func (handler *Handler) predictPageData(c *fiber.Ctx, values map[string]string) fiber.Map {
	return fiber.Map{
		"Title":      localizedPageTitle(currentMessages(c), "meta.title.predict", "CardioCheck | Predict"),
		"Values":     values,
		"ChestPain":  models.ChestPainCatalog(),
		"Accuracy":   handler.prediction.Accuracy(),
		"Disclaimer": services.PredictionDisclaimer,
	}
}

func (handler *Handler) ShowPredict(c *fiber.Ctx) error {
	return handler.render(c, "predict", handler.predictPageData(c, formValuesFor(models.DefaultHealthFeatures())))
}

func (handler *Handler) Predict(c *fiber.Ctx) error {
	features, raw, err := parseHealthFeatures(c)
	if err != nil {
		return handler.respondPredictError(c, raw, "invalid health parameters", err)
	}

	prediction, err := handler.prediction.Predict(features)
	if errors.Is(err, ml.ErrMalformedFeatureVector) {
		return handler.respondPredictError(c, raw, "health parameter out of range", err)
	}
	if err != nil {
		slog.Error("prediction failed", "code", logging.MODEL_PREDICT, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to run prediction")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{
			"prediction": prediction,
			"accuracy":   handler.prediction.Accuracy(),
		})
	}

	data := fiber.Map{"Prediction": prediction}
	if isHTMX(c) {
		return handler.renderPartial(c, "prediction_result", data)
	}
	page := handler.predictPageData(c, formValuesFor(features))
	page["Prediction"] = prediction
	return handler.render(c, "predict", page)
}

// respondPredictError keeps the submitted values so the form can be corrected in place.
func (handler *Handler) respondPredictError(c *fiber.Ctx, raw map[string]string, message string, cause error) error {
	if acceptsJSON(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  message,
			"detail": cause.Error(),
		})
	}
	if isHTMX(c) {
		return apiError(c, fiber.StatusBadRequest, message)
	}

	page := handler.predictPageData(c, raw)
	page["ErrorText"] = localizedError(currentMessages(c), message)
	page["ErrorDetail"] = cause.Error()
	c.Status(fiber.StatusBadRequest)
	return handler.render(c, "predict", page)
}

func (handler *Handler) CalculateBMI(c *fiber.Ctx) error {
	input := bmiInput{}
	if err := c.BodyParser(&input); err != nil || input.Weight == nil || input.Height == nil {
		return handler.respondBMIError(c, "invalid bmi input", services.ErrInvalidBMIInput)
	}

	result, err := services.ComputeBMI(*input.Weight, *input.Height)
	if err != nil {
		return handler.respondBMIError(c, "invalid bmi input", err)
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"bmi": result})
	}
	data := fiber.Map{"BMI": result}
	if isHTMX(c) {
		return handler.renderPartial(c, "bmi_result", data)
	}
	page := handler.predictPageData(c, formValuesFor(models.DefaultHealthFeatures()))
	page["BMI"] = result
	return handler.render(c, "predict", page)
}

func (handler *Handler) respondBMIError(c *fiber.Ctx, message string, cause error) error {
	if acceptsJSON(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  message,
			"detail": cause.Error(),
		})
	}
	if isHTMX(c) {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	page := handler.predictPageData(c, formValuesFor(models.DefaultHealthFeatures()))
	page["BMIError"] = localizedError(currentMessages(c), message)
	c.Status(fiber.StatusBadRequest)
	return handler.render(c, "predict", page)
}

func (handler *Handler) GetModelInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"accuracy": handler.prediction.Accuracy(),
		"model":    handler.prediction.ModelInfo(),
	})
}
