package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

// ExportHistoryCSV writes the filtered medical history with labels spelled out.
func (handler *Handler) ExportHistoryCSV(c *fiber.Ctx) error {
	filter, err := readHistoryQuery(c).filter()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid history filter")
	}
	rows, err := handler.export.BuildCSVRows(filter)
	if isHistoryFilterError(err) {
		return apiError(c, fiber.StatusBadRequest, "invalid history filter")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export history")
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export history")
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to export history")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export history")
	}

	setExportAttachmentHeaders(c, "text/csv", buildExportFilename(time.Now(), "csv"))
	return c.Send(output.Bytes())
}

// ExportHistoryJSON returns the same selection as the CSV export plus a summary.
func (handler *Handler) ExportHistoryJSON(c *fiber.Ctx) error {
	filter, err := readHistoryQuery(c).filter()
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid history filter")
	}
	entries, err := handler.export.BuildJSONEntries(filter)
	if isHistoryFilterError(err) {
		return apiError(c, fiber.StatusBadRequest, "invalid history filter")
	}
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export history")
	}
	summary, err := handler.export.BuildSummary(filter)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export history")
	}

	setExportAttachmentHeaders(c, fiber.MIMEApplicationJSON, buildExportFilename(time.Now(), "json"))
	return c.JSON(fiber.Map{
		"exported_at": time.Now().UTC().Format(time.RFC3339),
		"summary": fiber.Map{
			"entries":   summary.TotalEntries,
			"positives": summary.Positives,
			"age_from":  summary.AgeFrom,
			"age_to":    summary.AgeTo,
		},
		"entries": entries,
	})
}

func buildExportFilename(now time.Time, extension string) string {
	return fmt.Sprintf("cardiocheck-history-%s.%s", now.Format("2006-01-02"), strings.TrimPrefix(extension, "."))
}

func setExportAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
