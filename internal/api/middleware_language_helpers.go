package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const languageCookieTTL = 365 * 24 * time.Hour

// LanguageMiddleware resolves the page language from, in order, a ?lang=
// query value, the language cookie and Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	stored := strings.TrimSpace(c.Cookies(languageCookieName))

	var language string
	switch requested := strings.TrimSpace(c.Query("lang")); {
	case requested != "":
		language = handler.i18n.NormalizeLanguage(requested)
	case stored != "":
		language = handler.i18n.NormalizeLanguage(stored)
	default:
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	if stored != language {
		handler.setLanguageCookie(c, language)
	}
	c.Vary(fiber.HeaderAcceptLanguage)
	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(languageCookieTTL),
	})
}
