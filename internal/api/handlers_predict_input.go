package api

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/models"
)

var errMissingHealthField = errors.New("missing health parameter")

// continuousFeature is the only field that accepts a fractional value.
const continuousFeature = "oldpeak"

// parseHealthFeatures reads the 13 named fields from a form or JSON body.
// Range checks are left to services.ValidateFeatures.
func parseHealthFeatures(c *fiber.Ctx) (models.HealthFeatures, map[string]string, error) {
	raw, err := readBodyFields(c, models.FeatureNames[:])
	if err != nil {
		return models.HealthFeatures{}, raw, err
	}

	vector := make([]float64, models.FeatureCount)
	for index, name := range models.FeatureNames {
		text := strings.TrimSpace(raw[name])
		if text == "" {
			return models.HealthFeatures{}, raw, fmt.Errorf("%w: %s", errMissingHealthField, name)
		}
		value, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return models.HealthFeatures{}, raw, fmt.Errorf("%s is not a number", name)
		}
		if name != continuousFeature && value != math.Trunc(value) {
			return models.HealthFeatures{}, raw, fmt.Errorf("%s must be a whole number", name)
		}
		vector[index] = value
	}

	features, err := models.HealthFeaturesFromVector(vector)
	return features, raw, err
}

// formValuesFor echoes a feature set back into the form fields.
func formValuesFor(features models.HealthFeatures) map[string]string {
	values := make(map[string]string, models.FeatureCount)
	for index, value := range features.Vector() {
		values[models.FeatureNames[index]] = strconv.FormatFloat(value, 'f', -1, 64)
	}
	return values
}
