package dataset

import (
	"github.com/terraincognita07/cardiocheck/internal/models"
)

// ColumnCount is the number of columns in a dataset row: the features followed by the target.
const ColumnCount = models.FeatureCount + 1

const (
	ageColumn       = 0
	sexColumn       = 1
	chestPainColumn = 2
	targetColumn    = models.FeatureCount
)

// Row holds one record in header order.
type Row [ColumnCount]float64

func (row Row) Features() []float64 {
	features := make([]float64, models.FeatureCount)
	copy(features, row[:models.FeatureCount])
	return features
}

func (row Row) Target() int { return int(row[targetColumn]) }

func (row Row) Positive() bool { return row.Target() == 1 }

func (row Row) Age() int { return int(row[ageColumn]) }

// Table is the loaded dataset. It is never mutated after Load returns.
type Table struct {
	rows      []Row
	positives int
	minAge    int
	maxAge    int
}

func newTable(rows []Row) *Table {
	table := &Table{rows: rows}
	for index, row := range rows {
		if row.Positive() {
			table.positives++
		}
		age := row.Age()
		if index == 0 || age < table.minAge {
			table.minAge = age
		}
		if index == 0 || age > table.maxAge {
			table.maxAge = age
		}
	}
	return table
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Positives() int { return t.positives }

// Rows returns a copy of the rows so callers cannot mutate the shared table.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func (t *Table) Row(index int) Row { return t.rows[index] }

func (t *Table) AgeRange() (int, int) { return t.minAge, t.maxAge }

func Columns() []string {
	columns := make([]string, 0, ColumnCount)
	columns = append(columns, models.FeatureNames[:]...)
	return append(columns, models.TargetColumn)
}

func (t *Table) Columns() []string { return Columns() }

// Column returns the values of the named column, or false when the name is unknown.
func (t *Table) Column(name string) ([]float64, bool) {
	index := columnIndex(name)
	if index < 0 {
		return nil, false
	}
	return t.column(index), true
}

func (t *Table) column(index int) []float64 {
	values := make([]float64, len(t.rows))
	for rowIndex, row := range t.rows {
		values[rowIndex] = row[index]
	}
	return values
}

func columnIndex(name string) int {
	for index, column := range Columns() {
		if column == name {
			return index
		}
	}
	return -1
}
