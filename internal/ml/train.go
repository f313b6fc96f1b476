package ml

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/terraincognita07/cardiocheck/internal/dataset"
	"github.com/terraincognita07/cardiocheck/internal/logging"
)

// Train splits rows into train and holdout sets, fits the ensemble on the
// training split and returns it with the holdout accuracy.
func Train(rows []dataset.Row, params Params) (*Model, float64, error) {
	if err := params.validate(); err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, 0, ErrEmptyDataset
	}

	started := time.Now()
	trainIndexes, testIndexes := TrainTestSplit(len(rows), params.TestFraction, params.Seed)
	if len(trainIndexes) == 0 {
		return nil, 0, ErrEmptyDataset
	}

	features := make([][]float64, len(trainIndexes))
	labels := make([]float64, len(trainIndexes))
	for position, index := range trainIndexes {
		features[position] = rows[index].Features()
		labels[position] = float64(rows[index].Target())
	}

	model, err := fit(features, labels, params)
	if err != nil {
		return nil, 0, err
	}
	model.trainRows = len(trainIndexes)
	model.testRows = len(testIndexes)

	accuracy, err := holdoutAccuracy(model, rows, testIndexes)
	if err != nil {
		return nil, 0, err
	}

	slog.Info("model trained",
		"code", logging.MODEL_TRAIN,
		"estimators", model.Estimators(),
		"train_rows", model.trainRows,
		"test_rows", model.testRows,
		"accuracy", accuracy,
		"duration", time.Since(started),
	)
	return model, accuracy, nil
}

func fit(features [][]float64, labels []float64, params Params) (*Model, error) {
	positives := 0.0
	for _, label := range labels {
		positives += label
	}
	prior := positives / float64(len(labels))
	if prior == 0 || prior == 1 {
		return nil, fmt.Errorf("%w: %d rows share one label", ErrSingleClass, len(labels))
	}

	model := &Model{
		initScore:    math.Log(prior / (1 - prior)),
		learningRate: params.LearningRate,
		stumps:       make([]stump, 0, params.Estimators),
	}

	scores := make([]float64, len(labels))
	for index := range scores {
		scores[index] = model.initScore
	}
	probabilities := make([]float64, len(labels))
	residuals := make([]float64, len(labels))

	for stage := 0; stage < params.Estimators; stage++ {
		for index, score := range scores {
			probabilities[index] = sigmoid(score)
			residuals[index] = labels[index] - probabilities[index]
		}

		next := fitStump(features, residuals, probabilities)
		model.stumps = append(model.stumps, next)
		for index, row := range features {
			scores[index] += params.LearningRate * next.value(row)
		}
	}
	return model, nil
}

func holdoutAccuracy(model *Model, rows []dataset.Row, testIndexes []int) (float64, error) {
	if len(testIndexes) == 0 {
		return 0, nil
	}
	correct := 0
	for _, index := range testIndexes {
		label, err := model.Predict(rows[index].Features())
		if err != nil {
			return 0, err
		}
		if label == rows[index].Target() {
			correct++
		}
	}
	return float64(correct) / float64(len(testIndexes)), nil
}
