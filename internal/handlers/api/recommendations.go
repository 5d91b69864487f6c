package api

import (
	"github.com/gofiber/fiber/v3"

	"pathways/internal/controller"
	"pathways/internal/middleware"
	"pathways/internal/results"
)

// RecommendationHandler exposes card actions as JSON.
type RecommendationHandler struct {
	ctrl *controller.Controller
}

// NewRecommendationHandler creates a new API recommendation handler.
func NewRecommendationHandler(ctrl *controller.Controller) *RecommendationHandler {
	return &RecommendationHandler{ctrl: ctrl}
}

// Save forwards the recommendation behind :handle to the backend.
func (h *RecommendationHandler) Save(c fiber.Ctx) error {
	err := h.ctrl.Save(c.Context(), middleware.SessionFrom(c), results.Handle(c.Params("handle")))
	if err != nil {
		return jsonOperationError(c, err, controller.SaveMessage(err))
	}
	return jsonSuccess(c, fiber.Map{"message": controller.MsgSaved})
}

// Details returns the modal content for :handle and marks it open.
func (h *RecommendationHandler) Details(c fiber.Ctx) error {
	d, err := h.ctrl.ShowDetails(middleware.SessionFrom(c), results.Handle(c.Params("handle")))
	if err != nil {
		return jsonOperationError(c, err, controller.MsgSubmitFailed)
	}
	return jsonSuccess(c, d)
}

// CloseModal closes the details modal.
func (h *RecommendationHandler) CloseModal(c fiber.Ctx) error {
	closed, err := h.ctrl.CloseModal(middleware.SessionFrom(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "Failed to close details")
	}
	return jsonSuccess(c, fiber.Map{"closed": closed})
}
