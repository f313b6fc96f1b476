package api

import "strings"

var errorKeys = map[string]string{
	"invalid input":                    "auth.error.invalid_input",
	"invalid credentials":              "auth.error.invalid_credentials",
	"username or email already exists": "auth.error.duplicate_credential",
	"password too long":                "auth.error.password_too_long",
	"too many login attempts":          "auth.error.too_many_login_attempts",
	"unauthorized":                     "auth.error.unauthorized",
	"invalid health parameters":        "predict.error.invalid_input",
	"health parameter out of range":    "predict.error.out_of_range",
	"invalid bmi input":                "bmi.error.invalid_input",
	"invalid history filter":           "history.error.invalid_filter",
	"feedback text is empty":           "feedback.error.empty",
	"feedback text is too long":        "feedback.error.too_long",
	"rating must be between 1 and 5":   "feedback.error.invalid_rating",
	"unknown feedback category":        "feedback.error.invalid_category",
	"failed to create account":         "common.error.internal",
	"failed to create session":         "common.error.internal",
	"failed to run prediction":         "common.error.internal",
	"failed to save feedback":          "common.error.internal",
	"failed to load feedback":          "common.error.internal",
	"failed to export history":         "common.error.internal",
	"failed to load history":           "common.error.internal",
	"not found":                        "not_found.title",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func errorTranslationKey(message string) string {
	key, ok := errorKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

// localizedError resolves a handler error message to display text, or returns it unchanged.
func localizedError(messages map[string]string, message string) string {
	if key := errorTranslationKey(message); key != "" {
		if localized := translateMessage(messages, key); localized != key {
			return localized
		}
	}
	return message
}
