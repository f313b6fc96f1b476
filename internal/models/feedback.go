package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	MinFeedbackRating     = 1
	MaxFeedbackRating     = 5
	DefaultFeedbackRating = 3
)

type FeedbackCategory int

const (
	FeedbackGeneral FeedbackCategory = iota
	FeedbackPredictionAccuracy
	FeedbackUserInterface
	FeedbackFeatures
	FeedbackSuggestions
	feedbackCategoryCount
)

var feedbackCategoryLabels = [feedbackCategoryCount]string{
	FeedbackGeneral:            "General",
	FeedbackPredictionAccuracy: "Prediction Accuracy",
	FeedbackUserInterface:      "User Interface",
	FeedbackFeatures:           "Features",
	FeedbackSuggestions:        "Suggestions",
}

func (category FeedbackCategory) Valid() bool {
	return category >= 0 && category < feedbackCategoryCount
}

func (category FeedbackCategory) String() string {
	if !category.Valid() {
		return ""
	}
	return feedbackCategoryLabels[category]
}

func FeedbackCategories() []FeedbackCategory {
	categories := make([]FeedbackCategory, 0, feedbackCategoryCount)
	for category := FeedbackCategory(0); category < feedbackCategoryCount; category++ {
		categories = append(categories, category)
	}
	return categories
}

// ParseFeedbackCategory accepts the display label (case-insensitive) or the numeric code.
func ParseFeedbackCategory(raw string) (FeedbackCategory, bool) {
	return parseLabeled[FeedbackCategory](raw, feedbackCategoryLabels[:])
}

func (category FeedbackCategory) Value() (driver.Value, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("invalid feedback category %d", int(category))
	}
	return category.String(), nil
}

func (category *FeedbackCategory) Scan(value any) error {
	var raw string
	switch typed := value.(type) {
	case string:
		raw = typed
	case []byte:
		raw = string(typed)
	case nil:
		*category = FeedbackGeneral
		return nil
	default:
		return fmt.Errorf("unsupported feedback category value %T", value)
	}
	parsed, ok := ParseFeedbackCategory(raw)
	if !ok {
		return fmt.Errorf("unknown feedback category %q", raw)
	}
	*category = parsed
	return nil
}

// Feedback keeps the free-text username instead of a foreign key to users.
type Feedback struct {
	ID        uint             `gorm:"primaryKey"`
	User      string           `gorm:"column:user;not null"`
	Text      string           `gorm:"column:feedback;not null"`
	Rating    int              `gorm:"not null;default:3"`
	Category  FeedbackCategory `gorm:"column:category;type:text;not null"`
	CreatedAt time.Time        `gorm:"not null"`
}

func (Feedback) TableName() string { return "feedback" }
