package api

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func redirectOrJSON(c *fiber.Ctx, path string) error {
	if isHTMX(c) {
		c.Set("HX-Redirect", path)
		return c.SendStatus(fiber.StatusOK)
	}
	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

// apiError writes message as JSON, or as a localized fragment for htmx requests.
func apiError(c *fiber.Ctx, status int, message string) error {
	if isHTMX(c) {
		rendered := localizedError(currentMessages(c), message)
		return c.Status(status).SendString(fmt.Sprintf("<div class=\"status-error\">%s</div>", template.HTMLEscapeString(rendered)))
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

func isHTMX(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Get("HX-Request"), "true")
}

func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func localizedPageTitle(messages map[string]string, key string, fallback string) string {
	title := translateMessage(messages, key)
	if title == key || strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}

func currentPathWithQuery(c *fiber.Ctx) string {
	path := c.Path()
	if query := string(c.Request().URI().QueryString()); query != "" {
		return path + "?" + query
	}
	return path
}

// readBodyFields collects named fields from a form or JSON body as trimmed text.
// JSON numbers and booleans are stringified so both encodings parse the same way.
func readBodyFields(c *fiber.Ctx, names []string) (map[string]string, error) {
	raw := make(map[string]string, len(names))
	if !strings.Contains(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		for _, name := range names {
			raw[name] = strings.TrimSpace(c.FormValue(name))
		}
		return raw, nil
	}

	body := map[string]any{}
	if err := c.BodyParser(&body); err != nil {
		return raw, err
	}
	for _, name := range names {
		if value, ok := body[name]; ok && value != nil {
			raw[name] = strings.TrimSpace(fmt.Sprint(value))
		}
	}
	return raw, nil
}
