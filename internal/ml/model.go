package ml

import (
	"fmt"
	"math"
	"sort"

	"github.com/terraincognita07/cardiocheck/internal/models"
)

// Model is an additive ensemble of stumps over a log-odds base score.
// It is immutable once Train returns and safe for concurrent use.
type Model struct {
	initScore    float64
	learningRate float64
	stumps       []stump
	trainRows    int
	testRows     int
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

type ModelInfo struct {
	Estimators   int                 `json:"estimators"`
	LearningRate float64             `json:"learning_rate"`
	MaxDepth     int                 `json:"max_depth"`
	TrainRows    int                 `json:"train_rows"`
	TestRows     int                 `json:"test_rows"`
	Importances  []FeatureImportance `json:"feature_importances"`
}

func (m *Model) Estimators() int { return len(m.stumps) }

func (m *Model) Info() ModelInfo {
	return ModelInfo{
		Estimators:   len(m.stumps),
		LearningRate: m.learningRate,
		MaxDepth:     1,
		TrainRows:    m.trainRows,
		TestRows:     m.testRows,
		Importances:  m.FeatureImportances(),
	}
}

// FeatureImportances returns the normalized split improvement per feature, largest first.
func (m *Model) FeatureImportances() []FeatureImportance {
	totals := make([]float64, models.FeatureCount)
	sum := 0.0
	for _, s := range m.stumps {
		if s.Feature < 0 {
			continue
		}
		totals[s.Feature] += s.Improvement
		sum += s.Improvement
	}

	importances := make([]FeatureImportance, models.FeatureCount)
	for index, name := range models.FeatureNames {
		importance := 0.0
		if sum > 0 {
			importance = totals[index] / sum
		}
		importances[index] = FeatureImportance{Feature: name, Importance: importance}
	}
	sort.SliceStable(importances, func(i, j int) bool {
		return importances[i].Importance > importances[j].Importance
	})
	return importances
}

func (m *Model) rawScore(features []float64) float64 {
	score := m.initScore
	for _, s := range m.stumps {
		score += m.learningRate * s.value(features)
	}
	return score
}

// PredictProba returns the probability of the positive class.
func (m *Model) PredictProba(features []float64) (float64, error) {
	if err := checkVector(features); err != nil {
		return 0, err
	}
	return sigmoid(m.rawScore(features)), nil
}

// Predict returns 1 when the positive class is more likely than not, else 0.
func (m *Model) Predict(features []float64) (int, error) {
	probability, err := m.PredictProba(features)
	if err != nil {
		return 0, err
	}
	if probability > 0.5 {
		return 1, nil
	}
	return 0, nil
}

func checkVector(features []float64) error {
	if len(features) != models.FeatureCount {
		return fmt.Errorf("%w: expected %d values, got %d", ErrMalformedFeatureVector, models.FeatureCount, len(features))
	}
	for index, value := range features {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrMalformedFeatureVector, models.FeatureNames[index])
		}
	}
	return nil
}

func sigmoid(value float64) float64 {
	if value >= 0 {
		return 1 / (1 + math.Exp(-value))
	}
	exp := math.Exp(value)
	return exp / (1 + exp)
}
