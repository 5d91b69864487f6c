package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// htmxError renders an error message fragment that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.Render("partials/message", fiber.Map{
		"Kind":    "error",
		"Message": message,
	}, "")
}

func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// formResponses collects the posted questionnaire fields. Repeated fields
// become lists.
func formResponses(c fiber.Ctx) map[string]any {
	responses := map[string]any{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k, v := string(key), string(value)
		switch prev := responses[k].(type) {
		case nil:
			responses[k] = v
		case string:
			responses[k] = []any{prev, v}
		case []any:
			responses[k] = append(prev, v)
		}
	})
	return responses
}
