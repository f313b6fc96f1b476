package api

import "github.com/gofiber/fiber/v2"

const (
	authCookieName     = "cardiocheck_auth"
	languageCookieName = "cardiocheck_lang"
	flashCookieName    = "cardiocheck_flash"
	contextSessionKey  = "current_session"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)

func currentSession(c *fiber.Ctx) (*Session, bool) {
	session, ok := c.Locals(contextSessionKey).(*Session)
	return session, ok && session != nil
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}
