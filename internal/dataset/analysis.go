package dataset

import (
	"math"

	"github.com/terraincognita07/cardiocheck/internal/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const ageHistogramBins = 30

type HistogramBin struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
}

func (bin HistogramBin) Total() int { return bin.Positive + bin.Negative }

type CategoryCount struct {
	Label    string `json:"label"`
	Positive int    `json:"positive"`
	Negative int    `json:"negative"`
}

func (count CategoryCount) Total() int { return count.Positive + count.Negative }

type ColumnSummary struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Analysis is the exploratory summary shown on the EDA view.
type Analysis struct {
	Records         int             `json:"records"`
	Features        int             `json:"features"` // every column, target included
	PositiveCases   int             `json:"positive_cases"`
	Columns         []string        `json:"columns"`
	Summaries       []ColumnSummary `json:"summaries"`
	AgeHistogram    []HistogramBin  `json:"age_histogram"`
	Correlation     [][]float64     `json:"correlation"`
	ChestPainCounts []CategoryCount `json:"chest_pain_counts"`
	SexCounts       []CategoryCount `json:"sex_counts"`
}

func (a Analysis) PositiveRate() float64 {
	if a.Records == 0 {
		return 0
	}
	return float64(a.PositiveCases) / float64(a.Records)
}

func Analyze(table *Table) Analysis {
	columns := Columns()
	values := make([][]float64, len(columns))
	for index := range columns {
		values[index] = table.column(index)
	}

	return Analysis{
		Records:         table.Len(),
		Features:        len(columns),
		PositiveCases:   table.Positives(),
		Columns:         columns,
		Summaries:       summarize(columns, values),
		AgeHistogram:    ageHistogram(table, ageHistogramBins),
		Correlation:     correlationMatrix(values),
		ChestPainCounts: chestPainCounts(table),
		SexCounts:       sexCounts(table),
	}
}

func summarize(columns []string, values [][]float64) []ColumnSummary {
	summaries := make([]ColumnSummary, len(columns))
	for index, name := range columns {
		mean, std := stat.MeanStdDev(values[index], nil)
		summaries[index] = ColumnSummary{
			Name:   name,
			Mean:   finiteOrZero(mean),
			StdDev: finiteOrZero(std),
			Min:    floats.Min(values[index]),
			Max:    floats.Max(values[index]),
		}
	}
	return summaries
}

// correlationMatrix holds Pearson coefficients; constant columns correlate as 0.
func correlationMatrix(values [][]float64) [][]float64 {
	size := len(values)
	matrix := make([][]float64, size)
	for row := range matrix {
		matrix[row] = make([]float64, size)
	}
	for row := 0; row < size; row++ {
		matrix[row][row] = 1
		for column := row + 1; column < size; column++ {
			coefficient := finiteOrZero(stat.Correlation(values[row], values[column], nil))
			matrix[row][column] = coefficient
			matrix[column][row] = coefficient
		}
	}
	return matrix
}

func ageHistogram(table *Table, binCount int) []HistogramBin {
	minAge, maxAge := table.AgeRange()
	lower, upper := float64(minAge), float64(maxAge)
	if upper <= lower {
		upper = lower + 1
	}
	width := (upper - lower) / float64(binCount)

	bins := make([]HistogramBin, binCount)
	for index := range bins {
		bins[index].Lower = lower + float64(index)*width
		bins[index].Upper = lower + float64(index+1)*width
	}
	for _, row := range table.rows {
		index := int((float64(row.Age()) - lower) / width)
		if index >= binCount {
			index = binCount - 1
		}
		if index < 0 {
			index = 0
		}
		if row.Positive() {
			bins[index].Positive++
		} else {
			bins[index].Negative++
		}
	}
	return bins
}

func chestPainCounts(table *Table) []CategoryCount {
	catalog := models.ChestPainCatalog()
	counts := make([]CategoryCount, len(catalog))
	for index, info := range catalog {
		counts[index].Label = info.Label
	}
	for _, row := range table.rows {
		pain := models.ChestPainType(int(row[chestPainColumn]))
		if !pain.Valid() {
			continue
		}
		countOutcome(&counts[pain], row)
	}
	return counts
}

func sexCounts(table *Table) []CategoryCount {
	counts := []CategoryCount{
		{Label: models.SexFemale.String()},
		{Label: models.SexMale.String()},
	}
	for _, row := range table.rows {
		sex := models.Sex(int(row[sexColumn]))
		if !sex.Valid() {
			continue
		}
		countOutcome(&counts[sex], row)
	}
	return counts
}

func countOutcome(count *CategoryCount, row Row) {
	if row.Positive() {
		count.Positive++
		return
	}
	count.Negative++
}

func finiteOrZero(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
