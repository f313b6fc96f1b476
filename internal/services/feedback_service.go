package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/cardiocheck/internal/logging"
	"github.com/terraincognita07/cardiocheck/internal/models"
)

const (
	MaxFeedbackLength     = 2000
	DefaultFeedbackListed = 10
)

var (
	ErrEmptyFeedback    = errors.New("feedback text is empty")
	ErrFeedbackTooLong  = errors.New("feedback text is too long")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidCategory  = errors.New("unknown feedback category")
	ErrFeedbackNoAuthor = errors.New("feedback author is required")
)

type FeedbackRepository interface {
	Create(entry *models.Feedback) error
	ListRecentByUser(username string, limit int) ([]models.Feedback, error)
}

type FeedbackInput struct {
	Username string
	Text     string
	Rating   int
	Category models.FeedbackCategory
}

type FeedbackService struct {
	entries FeedbackRepository
	now     func() time.Time
}

func NewFeedbackService(entries FeedbackRepository) *FeedbackService {
	return &FeedbackService{entries: entries, now: time.Now}
}

func ValidateFeedback(input FeedbackInput) (FeedbackInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Text = strings.TrimSpace(input.Text)
	switch {
	case input.Username == "":
		return input, ErrFeedbackNoAuthor
	case input.Text == "":
		return input, ErrEmptyFeedback
	case utf8.RuneCountInString(input.Text) > MaxFeedbackLength:
		return input, ErrFeedbackTooLong
	case input.Rating < models.MinFeedbackRating || input.Rating > models.MaxFeedbackRating:
		return input, ErrInvalidRating
	case !input.Category.Valid():
		return input, ErrInvalidCategory
	}
	return input, nil
}

func (service *FeedbackService) Submit(input FeedbackInput) (models.Feedback, error) {
	valid, err := ValidateFeedback(input)
	if err != nil {
		return models.Feedback{}, err
	}

	entry := models.Feedback{
		User:      valid.Username,
		Text:      valid.Text,
		Rating:    valid.Rating,
		Category:  valid.Category,
		CreatedAt: service.now().UTC(),
	}
	if err := service.entries.Create(&entry); err != nil {
		return models.Feedback{}, fmt.Errorf("store feedback: %w", err)
	}

	slog.Info("feedback stored",
		"code", logging.FEEDBACK,
		"feedback_id", entry.ID,
		"category", entry.Category.String(),
		"rating", entry.Rating,
	)
	return entry, nil
}

func (service *FeedbackService) Recent(username string) ([]models.Feedback, error) {
	entries, err := service.entries.ListRecentByUser(strings.TrimSpace(username), DefaultFeedbackListed)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}
