package ml

import (
	"sync"

	"github.com/terraincognita07/cardiocheck/internal/dataset"
)

type TableSource interface {
	Load() (*dataset.Table, error)
}

type trainedModel struct {
	model    *Model
	accuracy float64
}

// CachedTrainer trains at most once per process and hands every caller the same model.
type CachedTrainer struct {
	train func() (trainedModel, error)
}

func NewCachedTrainer(source TableSource, params Params) *CachedTrainer {
	return &CachedTrainer{
		train: sync.OnceValues(func() (trainedModel, error) {
			table, err := source.Load()
			if err != nil {
				return trainedModel{}, err
			}
			model, accuracy, err := Train(table.Rows(), params)
			if err != nil {
				return trainedModel{}, err
			}
			return trainedModel{model: model, accuracy: accuracy}, nil
		}),
	}
}

func (c *CachedTrainer) Model() (*Model, float64, error) {
	trained, err := c.train()
	if err != nil {
		return nil, 0, err
	}
	return trained.model, trained.accuracy, nil
}
