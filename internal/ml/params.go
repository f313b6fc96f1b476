package ml

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDataset           = errors.New("dataset has no training rows")
	ErrSingleClass            = errors.New("training split contains a single class")
	ErrMalformedFeatureVector = errors.New("malformed feature vector")
	ErrInvalidParams          = errors.New("invalid training parameters")
)

// Params are fixed at build time; the web surface never changes them.
type Params struct {
	Estimators   int
	LearningRate float64
	MaxDepth     int
	TestFraction float64
	Seed         int64
}

func DefaultParams() Params {
	return Params{
		Estimators:   100,
		LearningRate: 1.0,
		MaxDepth:     1,
		TestFraction: 0.2,
		Seed:         0,
	}
}

func (p Params) validate() error {
	switch {
	case p.Estimators < 1:
		return fmt.Errorf("%w: estimators must be positive, got %d", ErrInvalidParams, p.Estimators)
	case p.LearningRate <= 0:
		return fmt.Errorf("%w: learning rate must be positive, got %v", ErrInvalidParams, p.LearningRate)
	case p.MaxDepth != 1:
		return fmt.Errorf("%w: only depth-1 trees are supported, got %d", ErrInvalidParams, p.MaxDepth)
	case p.TestFraction < 0 || p.TestFraction >= 1:
		return fmt.Errorf("%w: test fraction must be in [0, 1), got %v", ErrInvalidParams, p.TestFraction)
	}
	return nil
}
