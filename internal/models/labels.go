package models

import (
	"strconv"
	"strings"
)

func parseLabeled[T ~int](raw string, labels []string) (T, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	if code, err := strconv.Atoi(value); err == nil {
		if code < 0 || code >= len(labels) {
			return 0, false
		}
		return T(code), true
	}
	for index, label := range labels {
		if strings.EqualFold(label, value) {
			return T(index), true
		}
	}
	return 0, false
}

func labelOf(labels []string, index int) string {
	if index < 0 || index >= len(labels) {
		return ""
	}
	return labels[index]
}
