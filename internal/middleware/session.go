package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"pathways/internal/results"
)

const sessionKey = "pathwaySession"

// RequireSession exposes the page state of the user's session to handlers.
// The session middleware supplies the session ID; the state itself lives in
// cache, outside the session data the middleware saves after every request.
// It must run after the session middleware.
func RequireSession(cache *results.Cache) fiber.Handler {
	return func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Session unavailable")
		}

		c.Locals(sessionKey, cache.Session(c.Context(), sess.ID()))
		return c.Next()
	}
}

// SessionFrom returns the session stored by RequireSession, or nil.
func SessionFrom(c fiber.Ctx) results.Session {
	sess, _ := c.Locals(sessionKey).(results.Session)
	return sess
}
