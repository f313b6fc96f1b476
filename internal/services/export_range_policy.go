package services

import (
	"errors"
	"strconv"
	"strings"

	"github.com/terraincognita07/cardiocheck/internal/dataset"
)

var (
	ErrExportMinAgeInvalid = errors.New("export invalid min age")
	ErrExportMaxAgeInvalid = errors.New("export invalid max age")
	ErrExportRangeInvalid  = errors.New("export invalid age range")
	ErrExportStatusInvalid = errors.New("export invalid status")
)

// ParseHistoryFilter reads raw query values. Blank bounds stay zero so the
// table substitutes its own age range.
func ParseHistoryFilter(rawMinAge string, rawMaxAge string, rawStatus string, search string) (dataset.HistoryFilter, error) {
	filter := dataset.HistoryFilter{Search: strings.TrimSpace(search)}

	status, ok := dataset.ParseHistoryStatus(rawStatus)
	if !ok {
		return filter, ErrExportStatusInvalid
	}
	filter.Status = status

	minAge, err := parseAgeBound(rawMinAge)
	if err != nil {
		return filter, ErrExportMinAgeInvalid
	}
	maxAge, err := parseAgeBound(rawMaxAge)
	if err != nil {
		return filter, ErrExportMaxAgeInvalid
	}
	if minAge != 0 && maxAge != 0 && maxAge < minAge {
		return filter, ErrExportRangeInvalid
	}

	filter.MinAge = minAge
	filter.MaxAge = maxAge
	return filter, nil
}

func parseAgeBound(raw string) (int, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, errors.New("age bound must be a non-negative integer")
	}
	return parsed, nil
}
