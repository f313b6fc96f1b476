package api

import (
	"html/template"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/cardiocheck/internal/dataset"
	"github.com/terraincognita07/cardiocheck/internal/i18n"
	"github.com/terraincognita07/cardiocheck/internal/metrics"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	partials     map[string]*template.Template
	loginLimiter *attemptLimiter

	auth       *services.AuthService
	login      *services.LoginService
	prediction *services.PredictionService
	feedback   *services.FeedbackService
	table      *dataset.Table
	export     *services.ExportService
	analysis   dataset.Analysis
	metrics    *metrics.Metrics
}

// Dependencies are the long-lived handles built once at startup.
type Dependencies struct {
	Auth       *services.AuthService
	Login      *services.LoginService
	Prediction *services.PredictionService
	Feedback   *services.FeedbackService
	Table      *dataset.Table
	Analysis   dataset.Analysis
	Metrics    *metrics.Metrics
	I18n       *i18n.Manager
}

// Session is the logged-in state of one request, decoded from the auth cookie.
type Session struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionClaims struct {
	UserID   uint   `json:"uid"`
	Username string `json:"usr"`
	Email    string `json:"eml"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email" form:"email"`
}

type bmiInput struct {
	Weight *float64 `json:"weight" form:"weight"`
	Height *float64 `json:"height" form:"height"`
}

type feedbackInput struct {
	Feedback string `json:"feedback" form:"feedback"`
	Rating   string `json:"rating" form:"rating"`
	Category string `json:"category" form:"category"`
}

type FlashPayload struct {
	AuthError        string `json:"auth_error,omitempty"`
	AuthSuccess      string `json:"auth_success,omitempty"`
	MailNotice       string `json:"mail_notice,omitempty"`
	MailWarning      string `json:"mail_warning,omitempty"`
	FeedbackError    string `json:"feedback_error,omitempty"`
	FeedbackSuccess  string `json:"feedback_success,omitempty"`
	LoginUsername    string `json:"login_username,omitempty"`
	RegisterUsername string `json:"register_username,omitempty"`
	RegisterEmail    string `json:"register_email,omitempty"`
}

const sessionTTL = 12 * time.Hour

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)
