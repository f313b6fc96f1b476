package services

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/ml"
	"github.com/terraincognita07/cardiocheck/internal/models"
)

type Classifier interface {
	Predict(features []float64) (int, error)
	PredictProba(features []float64) (float64, error)
	Info() ml.ModelInfo
}

type PredictionObserver interface {
	ObservePrediction(label int, seconds float64)
}

type Prediction struct {
	Label           int      `json:"label"`
	Positive        bool     `json:"positive"`
	Probability     float64  `json:"probability"`
	Headline        string   `json:"headline"`
	AdviceHeading   string   `json:"advice_heading"`
	Recommendations []string `json:"recommendations"`
	Disclaimer      string   `json:"disclaimer"`
}

type featureRange struct {
	name string
	min  float64
	max  float64
}

// featureRanges mirrors the bounds of the prediction form, in vector order.
var featureRanges = [models.FeatureCount]featureRange{
	{name: "age", min: 20, max: 100},
	{name: "sex", min: 0, max: 1},
	{name: "cp", min: 0, max: 3},
	{name: "trestbps", min: 80, max: 200},
	{name: "chol", min: 100, max: 600},
	{name: "fbs", min: 0, max: 1},
	{name: "restecg", min: 0, max: 2},
	{name: "thalach", min: 60, max: 220},
	{name: "exang", min: 0, max: 1},
	{name: "oldpeak", min: 0, max: 6.2},
	{name: "slope", min: 0, max: 2},
	{name: "ca", min: 0, max: 4},
	{name: "thal", min: 0, max: 3},
}

func FeatureBounds(name string) (float64, float64, bool) {
	for _, bounds := range featureRanges {
		if bounds.name == name {
			return bounds.min, bounds.max, true
		}
	}
	return 0, 0, false
}

type PredictionService struct {
	model    Classifier
	accuracy float64
	observer PredictionObserver
}

func NewPredictionService(model Classifier, accuracy float64, observer PredictionObserver) *PredictionService {
	return &PredictionService{model: model, accuracy: accuracy, observer: observer}
}

func (service *PredictionService) Accuracy() float64 { return service.accuracy }

func (service *PredictionService) ModelInfo() ml.ModelInfo { return service.model.Info() }

// ValidateFeatures checks every field against the form ranges before the model sees it.
func ValidateFeatures(features models.HealthFeatures) error {
	vector := features.Vector()
	for index, value := range vector {
		bounds := featureRanges[index]
		if math.IsNaN(value) || value < bounds.min || value > bounds.max {
			return fmt.Errorf("%w: %s must be between %s and %s", ml.ErrMalformedFeatureVector, bounds.name, formatBound(bounds.min), formatBound(bounds.max))
		}
	}
	return nil
}

func (service *PredictionService) Predict(features models.HealthFeatures) (Prediction, error) {
	if err := ValidateFeatures(features); err != nil {
		return Prediction{}, err
	}

	started := time.Now()
	vector := features.Vector()
	label, err := service.model.Predict(vector)
	if err != nil {
		return Prediction{}, err
	}
	probability, err := service.model.PredictProba(vector)
	if err != nil {
		return Prediction{}, err
	}
	elapsed := time.Since(started)

	if service.observer != nil {
		service.observer.ObservePrediction(label, elapsed.Seconds())
	}
	slog.Debug("prediction served",
		"code", logging.MODEL_PREDICT,
		"label", label,
		"probability", probability,
		"duration", elapsed,
	)

	advice := adviceFor(label)
	return Prediction{
		Label:           label,
		Positive:        label == 1,
		Probability:     probability,
		Headline:        advice.headline,
		AdviceHeading:   advice.heading,
		Recommendations: append([]string(nil), advice.items...),
		Disclaimer:      PredictionDisclaimer,
	}, nil
}

func formatBound(value float64) string {
	if value == math.Trunc(value) {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.1f", value)
}
