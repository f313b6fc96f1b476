package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/dataset"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

type historyQuery struct {
	MinAge string
	MaxAge string
	Status string
	Search string
}

func readHistoryQuery(c *fiber.Ctx) historyQuery {
	return historyQuery{
		MinAge: strings.TrimSpace(c.Query("min_age")),
		MaxAge: strings.TrimSpace(c.Query("max_age")),
		Status: strings.TrimSpace(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}
}

func (query historyQuery) filter() (dataset.HistoryFilter, error) {
	return services.ParseHistoryFilter(query.MinAge, query.MaxAge, query.Status, query.Search)
}

func isHistoryFilterError(err error) bool {
	for _, known := range []error{
		dataset.ErrInvalidFilter,
		services.ErrExportMinAgeInvalid,
		services.ErrExportMaxAgeInvalid,
		services.ErrExportRangeInvalid,
		services.ErrExportStatusInvalid,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

func (handler *Handler) filterHistory(c *fiber.Ctx) (historyQuery, []dataset.HistoryEntry, error) {
	query := readHistoryQuery(c)
	filter, err := query.filter()
	if err != nil {
		return query, nil, err
	}
	entries, err := handler.table.Filter(filter)
	return query, entries, err
}

func (handler *Handler) ShowHistory(c *fiber.Ctx) error {
	query, entries, err := handler.filterHistory(c)
	if err != nil && !isHistoryFilterError(err) {
		return apiError(c, fiber.StatusInternalServerError, "failed to load history")
	}

	minAge, maxAge := handler.table.AgeRange()
	data := fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.history", "CardioCheck | Medical History"),
		"Query":    query,
		"Entries":  entries,
		"Columns":  services.ExportCSVHeaders,
		"Statuses": dataset.HistoryStatuses(),
		"AgeMin":   minAge,
		"AgeMax":   maxAge,
		"Total":    handler.export.Total(),
	}
	if err != nil {
		data["ErrorText"] = localizedError(currentMessages(c), "invalid history filter")
		c.Status(fiber.StatusBadRequest)
	}
	if isHTMX(c) {
		return handler.renderPartial(c, "history_rows", data)
	}
	return handler.render(c, "history", data)
}

func (handler *Handler) GetHistory(c *fiber.Ctx) error {
	_, entries, err := handler.filterHistory(c)
	if isHistoryFilterError(err) {
		return apiError(c, fiber.StatusBadRequest, "invalid history filter")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load history")
	}
	return c.JSON(fiber.Map{
		"total":   handler.export.Total(),
		"count":   len(entries),
		"entries": entries,
	})
}
