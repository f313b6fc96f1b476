package models

import "fmt"

// FeatureCount is the width of the classifier input.
const FeatureCount = 13

const TargetColumn = "target"

// FeatureNames lists the classifier inputs in training order.
var FeatureNames = [FeatureCount]string{
	"age",
	"sex",
	"cp",
	"trestbps",
	"chol",
	"fbs",
	"restecg",
	"thalach",
	"exang",
	"oldpeak",
	"slope",
	"ca",
	"thal",
}

type Sex int

const (
	SexFemale Sex = iota
	SexMale
	sexCount
)

var sexLabels = [sexCount]string{
	SexFemale: "Female",
	SexMale:   "Male",
}

func (sex Sex) Valid() bool           { return sex >= 0 && sex < sexCount }
func (sex Sex) String() string        { return labelOf(sexLabels[:], int(sex)) }
func ParseSex(raw string) (Sex, bool) { return parseLabeled[Sex](raw, sexLabels[:]) }

type YesNo int

const (
	No YesNo = iota
	Yes
	yesNoCount
)

var yesNoLabels = [yesNoCount]string{
	No:  "No",
	Yes: "Yes",
}

func (flag YesNo) Valid() bool            { return flag >= 0 && flag < yesNoCount }
func (flag YesNo) String() string         { return labelOf(yesNoLabels[:], int(flag)) }
func ParseYesNo(raw string) (YesNo, bool) { return parseLabeled[YesNo](raw, yesNoLabels[:]) }

type ChestPainType int

const (
	TypicalAngina ChestPainType = iota
	AtypicalAngina
	NonAnginalPain
	Asymptomatic
	chestPainTypeCount
)

type ChestPainInfo struct {
	Type           ChestPainType
	Label          string
	Description    string
	SymptomHeading string
	Symptoms       []string
}

var chestPainCatalog = [chestPainTypeCount]ChestPainInfo{
	TypicalAngina: {
		Type:           TypicalAngina,
		Label:          "Typical Angina",
		Description:    "Chest pain or discomfort that occurs when the heart muscle doesn't get enough oxygen-rich blood. Usually feels like pressure, squeezing, or fullness in the chest.",
		SymptomHeading: "Common Symptoms",
		Symptoms: []string{
			"Pressure or tightness in the chest",
			"Pain that may spread to the arms, neck, jaw, or back",
			"Shortness of breath",
			"Nausea or dizziness",
		},
	},
	AtypicalAngina: {
		Type:           AtypicalAngina,
		Label:          "Atypical Angina",
		Description:    "Similar to typical angina but with different characteristics. Pain may be less severe or occur in different locations.",
		SymptomHeading: "Common Symptoms",
		Symptoms: []string{
			"Pain in the upper abdomen",
			"Pain in the back, neck, or jaw",
			"Fatigue or weakness",
			"Sweating",
		},
	},
	NonAnginalPain: {
		Type:           NonAnginalPain,
		Label:          "Non-Anginal Pain",
		Description:    "Chest pain that is not related to heart problems. Often caused by muscle strain, acid reflux, or other conditions.",
		SymptomHeading: "Common Symptoms",
		Symptoms: []string{
			"Sharp or stabbing pain",
			"Pain that worsens with movement",
			"Pain that changes with breathing",
			"Burning sensation",
		},
	},
	Asymptomatic: {
		Type:           Asymptomatic,
		Label:          "Asymptomatic",
		Description:    "No chest pain or discomfort, but other symptoms may be present.",
		SymptomHeading: "Warning Signs to Watch For",
		Symptoms: []string{
			"Shortness of breath",
			"Fatigue",
			"Irregular heartbeat",
			"Dizziness or lightheadedness",
		},
	},
}

func (pain ChestPainType) Valid() bool { return pain >= 0 && pain < chestPainTypeCount }

func (pain ChestPainType) String() string {
	if !pain.Valid() {
		return ""
	}
	return chestPainCatalog[pain].Label
}

func (pain ChestPainType) Info() ChestPainInfo {
	if !pain.Valid() {
		return ChestPainInfo{Type: pain}
	}
	return chestPainCatalog[pain]
}

func ChestPainCatalog() []ChestPainInfo {
	catalog := make([]ChestPainInfo, 0, chestPainTypeCount)
	for _, info := range chestPainCatalog {
		catalog = append(catalog, info)
	}
	return catalog
}

func ParseChestPainType(raw string) (ChestPainType, bool) {
	labels := make([]string, chestPainTypeCount)
	for index, info := range chestPainCatalog {
		labels[index] = info.Label
	}
	return parseLabeled[ChestPainType](raw, labels)
}

type RestingECG int

const (
	ECGNormal RestingECG = iota
	ECGSTTAbnormality
	ECGLeftVentricularHypertrophy
	restingECGCount
)

var restingECGLabels = [restingECGCount]string{
	ECGNormal:                     "Normal",
	ECGSTTAbnormality:             "ST-T Wave Abnormality",
	ECGLeftVentricularHypertrophy: "Left Ventricular Hypertrophy",
}

func (ecg RestingECG) Valid() bool    { return ecg >= 0 && ecg < restingECGCount }
func (ecg RestingECG) String() string { return labelOf(restingECGLabels[:], int(ecg)) }
func ParseRestingECG(raw string) (RestingECG, bool) {
	return parseLabeled[RestingECG](raw, restingECGLabels[:])
}

type STSlope int

const (
	SlopeUpsloping STSlope = iota
	SlopeFlat
	SlopeDownsloping
	stSlopeCount
)

var stSlopeLabels = [stSlopeCount]string{
	SlopeUpsloping:   "Upsloping",
	SlopeFlat:        "Flat",
	SlopeDownsloping: "Downsloping",
}

func (slope STSlope) Valid() bool    { return slope >= 0 && slope < stSlopeCount }
func (slope STSlope) String() string { return labelOf(stSlopeLabels[:], int(slope)) }
func ParseSTSlope(raw string) (STSlope, bool) {
	return parseLabeled[STSlope](raw, stSlopeLabels[:])
}

type Thalassemia int

const (
	ThalNormal Thalassemia = iota
	ThalFixedDefect
	ThalReversibleDefect
	ThalNotAvailable
	thalassemiaCount
)

var thalassemiaLabels = [thalassemiaCount]string{
	ThalNormal:           "Normal",
	ThalFixedDefect:      "Fixed Defect",
	ThalReversibleDefect: "Reversible Defect",
	ThalNotAvailable:     "Not Available",
}

func (thal Thalassemia) Valid() bool    { return thal >= 0 && thal < thalassemiaCount }
func (thal Thalassemia) String() string { return labelOf(thalassemiaLabels[:], int(thal)) }
func ParseThalassemia(raw string) (Thalassemia, bool) {
	return parseLabeled[Thalassemia](raw, thalassemiaLabels[:])
}

// HealthFeatures is one prediction request. It is never persisted.
type HealthFeatures struct {
	Age               int
	Sex               Sex
	ChestPain         ChestPainType
	RestingBP         int
	Cholesterol       int
	FastingBloodSugar YesNo
	RestingECG        RestingECG
	MaxHeartRate      int
	ExerciseAngina    YesNo
	STDepression      float64
	Slope             STSlope
	MajorVessels      int
	Thal              Thalassemia
}

func DefaultHealthFeatures() HealthFeatures {
	return HealthFeatures{
		Age:          50,
		Sex:          SexFemale,
		ChestPain:    TypicalAngina,
		RestingBP:    120,
		Cholesterol:  200,
		MaxHeartRate: 150,
		STDepression: 1.0,
	}
}

// Vector returns the features in FeatureNames order.
func (features HealthFeatures) Vector() []float64 {
	return []float64{
		float64(features.Age),
		float64(features.Sex),
		float64(features.ChestPain),
		float64(features.RestingBP),
		float64(features.Cholesterol),
		float64(features.FastingBloodSugar),
		float64(features.RestingECG),
		float64(features.MaxHeartRate),
		float64(features.ExerciseAngina),
		features.STDepression,
		float64(features.Slope),
		float64(features.MajorVessels),
		float64(features.Thal),
	}
}

func HealthFeaturesFromVector(vector []float64) (HealthFeatures, error) {
	if len(vector) != FeatureCount {
		return HealthFeatures{}, fmt.Errorf("expected %d features, got %d", FeatureCount, len(vector))
	}
	return HealthFeatures{
		Age:               int(vector[0]),
		Sex:               Sex(int(vector[1])),
		ChestPain:         ChestPainType(int(vector[2])),
		RestingBP:         int(vector[3]),
		Cholesterol:       int(vector[4]),
		FastingBloodSugar: YesNo(int(vector[5])),
		RestingECG:        RestingECG(int(vector[6])),
		MaxHeartRate:      int(vector[7]),
		ExerciseAngina:    YesNo(int(vector[8])),
		STDepression:      vector[9],
		Slope:             STSlope(int(vector[10])),
		MajorVessels:      int(vector[11]),
		Thal:              Thalassemia(int(vector[12])),
	}, nil
}
