package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/terraincognita07/cardiocheck/internal/models"
)

var ErrInvalidFilter = errors.New("invalid history filter")

type HistoryStatus int

const (
	StatusAll HistoryStatus = iota
	StatusPositive
	StatusNegative
	historyStatusCount
)

var historyStatusLabels = [historyStatusCount]string{
	StatusAll:      "all",
	StatusPositive: "positive",
	StatusNegative: "negative",
}

func (status HistoryStatus) Valid() bool { return status >= 0 && status < historyStatusCount }

func (status HistoryStatus) String() string {
	if !status.Valid() {
		return ""
	}
	return historyStatusLabels[status]
}

func HistoryStatuses() []HistoryStatus {
	return []HistoryStatus{StatusAll, StatusPositive, StatusNegative}
}

// ParseHistoryStatus accepts "all", "positive" or "negative"; blank means all.
func ParseHistoryStatus(raw string) (HistoryStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return StatusAll, true
	}
	for index, label := range historyStatusLabels {
		if label == normalized {
			return HistoryStatus(index), true
		}
	}
	return StatusAll, false
}

// HistoryFilter selects medical-history rows. Zero age bounds mean the table's own range.
type HistoryFilter struct {
	MinAge int
	MaxAge int
	Status HistoryStatus
	Search string
}

// HistoryEntry is a row with its coded values spelled out for display.
type HistoryEntry struct {
	Index             int     `json:"index"`
	Age               int     `json:"age"`
	Sex               string  `json:"sex"`
	ChestPain         string  `json:"chest_pain"`
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
	Positive          bool    `json:"positive"`
}

func (t *Table) resolveFilter(filter HistoryFilter) (HistoryFilter, error) {
	if !filter.Status.Valid() {
		return filter, fmt.Errorf("%w: unknown status %d", ErrInvalidFilter, filter.Status)
	}
	if filter.MinAge < 0 || filter.MaxAge < 0 {
		return filter, fmt.Errorf("%w: age bounds must not be negative", ErrInvalidFilter)
	}
	if filter.MinAge == 0 {
		filter.MinAge = t.minAge
	}
	if filter.MaxAge == 0 {
		filter.MaxAge = t.maxAge
	}
	if filter.MinAge > filter.MaxAge {
		return filter, fmt.Errorf("%w: min age %d is above max age %d", ErrInvalidFilter, filter.MinAge, filter.MaxAge)
	}
	filter.Search = strings.ToLower(strings.TrimSpace(filter.Search))
	return filter, nil
}

// Filter returns the rows matching filter in table order.
func (t *Table) Filter(filter HistoryFilter) ([]HistoryEntry, error) {
	resolved, err := t.resolveFilter(filter)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0)
	for index, row := range t.rows {
		age := row.Age()
		if age < resolved.MinAge || age > resolved.MaxAge {
			continue
		}
		switch resolved.Status {
		case StatusPositive:
			if !row.Positive() {
				continue
			}
		case StatusNegative:
			if row.Positive() {
				continue
			}
		}

		entry := newHistoryEntry(index, row)
		if resolved.Search != "" && !entry.matches(resolved.Search) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func newHistoryEntry(index int, row Row) HistoryEntry {
	return HistoryEntry{
		Index:             index,
		Age:               row.Age(),
		Sex:               models.Sex(int(row[sexColumn])).String(),
		ChestPain:         models.ChestPainType(int(row[chestPainColumn])).String(),
		RestingBP:         row[3],
		Cholesterol:       row[4],
		FastingBloodSugar: models.YesNo(int(row[5])).String(),
		RestingECG:        models.RestingECG(int(row[6])).String(),
		MaxHeartRate:      row[7],
		ExerciseAngina:    models.YesNo(int(row[8])).String(),
		STDepression:      row[9],
		Slope:             models.STSlope(int(row[10])).String(),
		MajorVessels:      row[11],
		Thal:              models.Thalassemia(int(row[12])).String(),
		Positive:          row.Positive(),
	}
}

func (entry HistoryEntry) Outcome() string {
	if entry.Positive {
		return "Heart disease"
	}
	return "No heart disease"
}

func (entry HistoryEntry) Cells() []string {
	return []string{
		strconv.Itoa(entry.Age),
		entry.Sex,
		entry.ChestPain,
		formatNumber(entry.RestingBP),
		formatNumber(entry.Cholesterol),
		entry.FastingBloodSugar,
		entry.RestingECG,
		formatNumber(entry.MaxHeartRate),
		entry.ExerciseAngina,
		formatNumber(entry.STDepression),
		entry.Slope,
		formatNumber(entry.MajorVessels),
		entry.Thal,
		entry.Outcome(),
	}
}

// matches reports whether search occurs in a cell as a whole word or phrase.
// The outcome cell only matches in full since "heart disease" is part of
// "no heart disease".
func (entry HistoryEntry) matches(search string) bool {
	cells := entry.Cells()
	outcome := len(cells) - 1
	for index, cell := range cells {
		cell = strings.ToLower(cell)
		if index == outcome {
			if cell == search {
				return true
			}
			continue
		}
		if containsWord(cell, search) {
			return true
		}
	}
	return false
}

func containsWord(text string, word string) bool {
	for offset := 0; offset <= len(text)-len(word); {
		found := strings.Index(text[offset:], word)
		if found < 0 {
			return false
		}
		start := offset + found
		end := start + len(word)
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if (start == 0 || !isWordRune(before)) && (end == len(text) || !isWordRune(after)) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
