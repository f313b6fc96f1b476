package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/terraincognita07/cardiocheck/internal/logging"
)

var (
	ErrDataFileMissing = errors.New("dataset file is missing")
	ErrSchemaMismatch  = errors.New("dataset does not match the expected schema")
)

// Load reads a header row followed by numeric rows in Columns() order.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataFileMissing, path)
		}
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer file.Close()

	table, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Info("dataset loaded",
		"code", logging.DATA_LOAD,
		"path", path,
		"rows", table.Len(),
		"positives", table.Positives(),
	)
	return table, nil
}

func Parse(input io.Reader) (*Table, error) {
	reader := csv.NewReader(input)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrSchemaMismatch)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrSchemaMismatch, err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, 512)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSchemaMismatch, line, err)
		}
		row, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSchemaMismatch, line, err)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrSchemaMismatch)
	}
	return newTable(rows), nil
}

func validateHeader(header []string) error {
	expected := Columns()
	if len(header) != len(expected) {
		return fmt.Errorf("%w: expected %d columns, got %d", ErrSchemaMismatch, len(expected), len(header))
	}
	for index, column := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))
		if name != expected[index] {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrSchemaMismatch, index+1, column, expected[index])
		}
	}
	return nil
}

func parseRow(record []string) (Row, error) {
	var row Row
	if len(record) != ColumnCount {
		return row, fmt.Errorf("expected %d values, got %d", ColumnCount, len(record))
	}
	for index, cell := range record {
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return row, fmt.Errorf("column %s: %q is not numeric", Columns()[index], cell)
		}
		row[index] = value
	}
	if target := row[targetColumn]; target != 0 && target != 1 {
		return row, fmt.Errorf("target must be 0 or 1, got %v", target)
	}
	return row, nil
}

// Loader memoizes a single Load per process; every caller shares the same table.
type Loader struct {
	load func() (*Table, error)
}

func NewLoader(path string) *Loader {
	return &Loader{
		load: sync.OnceValues(func() (*Table, error) {
			return Load(path)
		}),
	}
}

func (l *Loader) Load() (*Table, error) { return l.load() }
