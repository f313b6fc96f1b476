package services

import (
	"errors"
	"testing"
)

func TestComputeBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		value    float64
		category BMICategory
	}{
		{name: "underweight", weight: 50, height: 180, value: 15.4, category: BMIUnderweight},
		{name: "normal", weight: 70, height: 175, value: 22.9, category: BMINormal},
		{name: "overweight", weight: 85, height: 175, value: 27.8, category: BMIOverweight},
		{name: "obese", weight: 110, height: 170, value: 38.1, category: BMIObese},
		{name: "boundary 25 is overweight", weight: 100, height: 200, value: 25, category: BMIOverweight},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := ComputeBMI(testCase.weight, testCase.height)
			if err != nil {
				t.Fatalf("ComputeBMI() unexpected error: %v", err)
			}
			if result.Value != testCase.value {
				t.Fatalf("expected BMI %v, got %v", testCase.value, result.Value)
			}
			if result.Category != testCase.category {
				t.Fatalf("expected category %v, got %v", testCase.category, result.Category)
			}
			if result.Label == "" || result.Advice == "" {
				t.Fatal("expected label and advice to be set")
			}
		})
	}
}

func TestComputeBMIRejectsOutOfRangeInput(t *testing.T) {
	inputs := [][2]float64{{29, 170}, {201, 170}, {70, 99}, {70, 251}}
	for _, input := range inputs {
		if _, err := ComputeBMI(input[0], input[1]); !errors.Is(err, ErrInvalidBMIInput) {
			t.Fatalf("ComputeBMI(%v, %v) expected ErrInvalidBMIInput, got %v", input[0], input[1], err)
		}
	}
}

func TestBMICategoryTablesAreComplete(t *testing.T) {
	for category := BMICategory(0); category < bmiCategoryCount; category++ {
		if category.String() == "" || category.Advice() == "" || category.Severity() == "" {
			t.Fatalf("category %d has an empty entry", category)
		}
	}
	if BMICategory(99).String() != "" {
		t.Fatal("expected unknown category to have no label")
	}
}
