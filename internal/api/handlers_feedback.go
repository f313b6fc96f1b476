package api

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/models"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

type feedbackView struct {
	ID        uint      `json:"id"`
	Text      string    `json:"feedback"`
	Rating    int       `json:"rating"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func newFeedbackView(entry models.Feedback) feedbackView {
	return feedbackView{
		ID:        entry.ID,
		Text:      entry.Text,
		Rating:    entry.Rating,
		Category:  entry.Category.String(),
		CreatedAt: entry.CreatedAt,
	}
}

// parseFeedbackInput applies the form defaults: rating 3 and the General category.
func parseFeedbackInput(c *fiber.Ctx, username string) (services.FeedbackInput, error) {
	fields, err := readBodyFields(c, []string{"feedback", "rating", "category"})
	if err != nil {
		return services.FeedbackInput{}, err
	}
	input := feedbackInput{Feedback: fields["feedback"], Rating: fields["rating"], Category: fields["category"]}

	parsed := services.FeedbackInput{
		Username: username,
		Text:     input.Feedback,
		Rating:   models.DefaultFeedbackRating,
		Category: models.FeedbackGeneral,
	}
	if raw := strings.TrimSpace(input.Rating); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return parsed, services.ErrInvalidRating
		}
		parsed.Rating = rating
	}
	if raw := strings.TrimSpace(input.Category); raw != "" {
		category, ok := models.ParseFeedbackCategory(raw)
		if !ok {
			return parsed, services.ErrInvalidCategory
		}
		parsed.Category = category
	}
	return parsed, nil
}

func feedbackErrorMessage(err error) (string, bool) {
	for _, known := range []error{
		services.ErrEmptyFeedback,
		services.ErrFeedbackTooLong,
		services.ErrInvalidRating,
		services.ErrInvalidCategory,
	} {
		if errors.Is(err, known) {
			return known.Error(), true
		}
	}
	return "", false
}

func (handler *Handler) ShowFeedback(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	messages := currentMessages(c)
	flash := handler.popFlashCookie(c)

	entries, err := handler.feedback.Recent(session.Username)
	if err != nil {
		slog.Error("feedback listing failed", "code", logging.FEEDBACK, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load feedback")
	}
	views := make([]feedbackView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newFeedbackView(entry))
	}

	return handler.render(c, "feedback", fiber.Map{
		"Title":         localizedPageTitle(messages, "meta.title.feedback", "CardioCheck | Feedback"),
		"Categories":    models.FeedbackCategories(),
		"DefaultRating": models.DefaultFeedbackRating,
		"MaxLength":     services.MaxFeedbackLength,
		"Recent":        views,
		"ErrorText":     localizedError(messages, flash.FeedbackError),
		"SuccessKey":    flash.FeedbackSuccess,
	})
}

func (handler *Handler) SubmitFeedback(c *fiber.Ctx) error {
	session, _ := currentSession(c)

	input, err := parseFeedbackInput(c, session.Username)
	if err != nil {
		message, ok := feedbackErrorMessage(err)
		if !ok {
			message = "invalid input"
		}
		return handler.respondFeedbackError(c, fiber.StatusBadRequest, message)
	}

	entry, err := handler.feedback.Submit(input)
	if err != nil {
		if message, ok := feedbackErrorMessage(err); ok {
			return handler.respondFeedbackError(c, fiber.StatusBadRequest, message)
		}
		slog.Error("feedback submission failed", "code", logging.FEEDBACK, "error", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save feedback")
	}

	handler.metrics.ObserveFeedback(entry.Category.String())
	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":       true,
			"feedback": newFeedbackView(entry),
		})
	}
	handler.setFlashCookie(c, FlashPayload{FeedbackSuccess: "feedback.success.submitted"})
	return redirectOrJSON(c, "/feedback")
}

func (handler *Handler) ListFeedback(c *fiber.Ctx) error {
	session, _ := currentSession(c)
	entries, err := handler.feedback.Recent(session.Username)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load feedback")
	}
	views := make([]feedbackView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, newFeedbackView(entry))
	}
	return c.JSON(fiber.Map{"feedback": views})
}
