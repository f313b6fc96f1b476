package services

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidBMIInput = errors.New("invalid BMI input")

const (
	MinBMIWeightKg = 30.0
	MaxBMIWeightKg = 200.0
	MinBMIHeightCm = 100.0
	MaxBMIHeightCm = 250.0
)

type BMICategory int

const (
	BMIUnderweight BMICategory = iota
	BMINormal
	BMIOverweight
	BMIObese
	bmiCategoryCount
)

type bmiCategoryInfo struct {
	label    string
	advice   string
	severity string
}

var bmiCategories = [bmiCategoryCount]bmiCategoryInfo{
	BMIUnderweight: {label: "Underweight", advice: "Consider consulting a nutritionist", severity: "warning"},
	BMINormal:      {label: "Normal weight", advice: "Keep maintaining a healthy lifestyle!", severity: "success"},
	BMIOverweight:  {label: "Overweight", advice: "Consider increasing physical activity", severity: "warning"},
	BMIObese:       {label: "Obese", advice: "Please consult a healthcare provider", severity: "error"},
}

func (category BMICategory) Valid() bool { return category >= 0 && category < bmiCategoryCount }

func (category BMICategory) String() string {
	if !category.Valid() {
		return ""
	}
	return bmiCategories[category].label
}

func (category BMICategory) Advice() string {
	if !category.Valid() {
		return ""
	}
	return bmiCategories[category].advice
}

// Severity is "success", "warning" or "error" and drives the result styling.
func (category BMICategory) Severity() string {
	if !category.Valid() {
		return ""
	}
	return bmiCategories[category].severity
}

type BMIResult struct {
	Value    float64     `json:"value"`
	Category BMICategory `json:"-"`
	Label    string      `json:"category"`
	Advice   string      `json:"advice"`
}

func ComputeBMI(weightKg float64, heightCm float64) (BMIResult, error) {
	if math.IsNaN(weightKg) || weightKg < MinBMIWeightKg || weightKg > MaxBMIWeightKg {
		return BMIResult{}, fmt.Errorf("%w: weight must be between %.0f and %.0f kg", ErrInvalidBMIInput, MinBMIWeightKg, MaxBMIWeightKg)
	}
	if math.IsNaN(heightCm) || heightCm < MinBMIHeightCm || heightCm > MaxBMIHeightCm {
		return BMIResult{}, fmt.Errorf("%w: height must be between %.0f and %.0f cm", ErrInvalidBMIInput, MinBMIHeightCm, MaxBMIHeightCm)
	}

	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	category := categorizeBMI(bmi)
	return BMIResult{
		Value:    math.Round(bmi*10) / 10,
		Category: category,
		Label:    category.String(),
		Advice:   category.Advice(),
	}, nil
}

func categorizeBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
