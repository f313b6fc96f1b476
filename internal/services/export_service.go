package services

import (
	"strings"

	"github.com/terraincognita07/cardiocheck/internal/dataset"
)

var ExportCSVHeaders = []string{
	"Age",
	"Sex",
	"Chest Pain Type",
	"Resting Blood Pressure",
	"Cholesterol",
	"Fasting Blood Sugar > 120",
	"Resting ECG",
	"Max Heart Rate",
	"Exercise Angina",
	"ST Depression",
	"ST Slope",
	"Major Vessels",
	"Thalassemia",
	"Outcome",
}

type HistoryReader interface {
	Filter(filter dataset.HistoryFilter) ([]dataset.HistoryEntry, error)
	Len() int
}

type ExportService struct {
	history HistoryReader
}

type ExportSummary struct {
	TotalEntries int
	Positives    int
	HasData      bool
	AgeFrom      int
	AgeTo        int
}

// ExportJSONEntry is a history row keyed by the dataset's column names with labels spelled out.
type ExportJSONEntry struct {
	Age               int     `json:"age"`
	Sex               string  `json:"sex"`
	ChestPain         string  `json:"cp"`
	RestingBP         float64 `json:"trestbps"`
	Cholesterol       float64 `json:"chol"`
	FastingBloodSugar string  `json:"fbs"`
	RestingECG        string  `json:"restecg"`
	MaxHeartRate      float64 `json:"thalach"`
	ExerciseAngina    string  `json:"exang"`
	STDepression      float64 `json:"oldpeak"`
	Slope             string  `json:"slope"`
	MajorVessels      float64 `json:"ca"`
	Thal              string  `json:"thal"`
	Outcome           string  `json:"outcome"`
}

type ExportCSVRow struct {
	cells []string
}

func NewExportService(history HistoryReader) *ExportService {
	return &ExportService{history: history}
}

func (service *ExportService) Total() int { return service.history.Len() }

func (service *ExportService) BuildSummary(filter dataset.HistoryFilter) (ExportSummary, error) {
	entries, err := service.history.Filter(filter)
	if err != nil {
		return ExportSummary{}, err
	}
	return summarizeEntries(entries), nil
}

func summarizeEntries(entries []dataset.HistoryEntry) ExportSummary {
	if len(entries) == 0 {
		return ExportSummary{}
	}

	summary := ExportSummary{
		TotalEntries: len(entries),
		HasData:      true,
		AgeFrom:      entries[0].Age,
		AgeTo:        entries[0].Age,
	}
	for _, entry := range entries {
		if entry.Age < summary.AgeFrom {
			summary.AgeFrom = entry.Age
		}
		if entry.Age > summary.AgeTo {
			summary.AgeTo = entry.Age
		}
		if entry.Positive {
			summary.Positives++
		}
	}
	return summary
}

func (service *ExportService) BuildJSONEntries(filter dataset.HistoryFilter) ([]ExportJSONEntry, error) {
	entries, err := service.history.Filter(filter)
	if err != nil {
		return nil, err
	}

	result := make([]ExportJSONEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ExportJSONEntry{
			Age:               entry.Age,
			Sex:               entry.Sex,
			ChestPain:         entry.ChestPain,
			RestingBP:         entry.RestingBP,
			Cholesterol:       entry.Cholesterol,
			FastingBloodSugar: entry.FastingBloodSugar,
			RestingECG:        entry.RestingECG,
			MaxHeartRate:      entry.MaxHeartRate,
			ExerciseAngina:    entry.ExerciseAngina,
			STDepression:      entry.STDepression,
			Slope:             entry.Slope,
			MajorVessels:      entry.MajorVessels,
			Thal:              entry.Thal,
			Outcome:           entry.Outcome(),
		})
	}
	return result, nil
}

func (service *ExportService) BuildCSVRows(filter dataset.HistoryFilter) ([]ExportCSVRow, error) {
	entries, err := service.history.Filter(filter)
	if err != nil {
		return nil, err
	}

	rows := make([]ExportCSVRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ExportCSVRow{cells: csvSafeCells(entry.Cells())})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return row.cells
}

// csvSafeCells prefixes values that spreadsheets would evaluate as formulas.
func csvSafeCells(cells []string) []string {
	for index, cell := range cells {
		if cell != "" && strings.ContainsRune("=+@", rune(cell[0])) {
			cells[index] = "'" + cell
		}
	}
	return cells
}
