package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"pathways/internal/controller"
	"pathways/internal/results"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonOperationError reports a failed card operation. Stale handles are a
// conflict; anything else is the backend's fault.
func jsonOperationError(c fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, results.ErrStaleReference):
		return jsonError(c, fiber.StatusConflict, controller.MsgStale)
	case errors.Is(err, controller.ErrInvalidPathway), errors.Is(err, controller.ErrInvalidResponses):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return jsonError(c, fiber.StatusBadGateway, message)
	}
}
