package handlers

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// ProbeCheck is one dependency verified by the readiness probe.
type ProbeCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	checks []ProbeCheck
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(checks ...ProbeCheck) *ProbeHandler {
	return &ProbeHandler{checks: checks}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
// Returns 200 OK if the application is running.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint for Kubernetes readiness probes.
// Returns 200 OK only when every configured dependency answers.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	for _, check := range h.checks {
		if err := check.Check(c.Context()); err != nil {
			slog.Warn("readiness check failed", "check", check.Name, "error", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "error",
				"error":  check.Name + " unavailable",
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
