package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/terraincognita07/cardiocheck/internal/metrics"
	"github.com/terraincognita07/cardiocheck/internal/services"
)

var pages = []string{
	"login",
	"register",
	"home",
	"predict",
	"eda",
	"history",
	"feedback",
	"not_found",
}

var partialFiles = []string{
	"prediction_result.html",
	"bmi_result.html",
	"history_rows.html",
}

func NewHandler(deps Dependencies, secret string, templateDir string, cookieSecure bool) (*Handler, error) {
	if deps.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	if deps.Auth == nil || deps.Login == nil || deps.Prediction == nil || deps.Feedback == nil {
		return nil, errors.New("auth, login, prediction and feedback services are required")
	}
	if deps.Table == nil {
		return nil, errors.New("dataset table is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	funcMap := newTemplateFuncMap()
	templates, err := parsePageTemplates(templateDir, funcMap, pages, partialFiles)
	if err != nil {
		return nil, err
	}
	partials, err := parsePartialTemplates(templateDir, funcMap, partialFiles)
	if err != nil {
		return nil, err
	}

	return &Handler{
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		i18n:         deps.I18n,
		templates:    templates,
		partials:     partials,
		loginLimiter: newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		auth:         deps.Auth,
		login:        deps.Login,
		prediction:   deps.Prediction,
		feedback:     deps.Feedback,
		table:        deps.Table,
		export:       services.NewExportService(deps.Table),
		analysis:     deps.Analysis,
		metrics:      deps.Metrics,
	}, nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t": func(messages map[string]string, key string) string {
			return translateMessage(messages, key)
		},
		"formatFloat": func(value float64) string {
			return fmt.Sprintf("%.1f", value)
		},
		"formatPercent": func(value float64) string {
			return fmt.Sprintf("%.1f%%", value*100)
		},
		"formatCorrelation": func(value float64) string {
			return fmt.Sprintf("%.2f", value)
		},
		"isActiveRoute": func(currentPath string, route string) bool {
			path := strings.TrimSpace(currentPath)
			if path == "" {
				return route == "/"
			}
			if route == "/" {
				return path == "/" || path == "/home" || strings.HasPrefix(path, "/?")
			}
			return path == route || strings.HasPrefix(path, route+"?") || strings.HasPrefix(path, route+"/")
		},
		"isSelected": func(current string, option string) bool {
			return strings.EqualFold(strings.TrimSpace(current), option)
		},
		"toJSON": func(value any) template.JS {
			serialized, _ := json.Marshal(value)
			return template.JS(serialized)
		},
	}
}
