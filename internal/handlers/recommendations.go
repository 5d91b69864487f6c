package handlers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v3"

	"pathways/internal/config"
	"pathways/internal/controller"
	"pathways/internal/middleware"
	"pathways/internal/results"
)

// alertEvent is triggered on the client after a save result is swapped in.
const alertEvent = "pathways:alert"

// RecommendationHandler handles questionnaire submission and the actions on
// rendered recommendation cards.
type RecommendationHandler struct {
	ctrl *controller.Controller
	cfg  *config.Config
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(ctrl *controller.Controller, cfg *config.Config) *RecommendationHandler {
	return &RecommendationHandler{ctrl: ctrl, cfg: cfg}
}

// Submit forwards the questionnaire and renders the result cards.
func (h *RecommendationHandler) Submit(c fiber.Ctx) error {
	pathway := c.Params("pathway")

	rs, err := h.ctrl.Submit(c.Context(), middleware.SessionFrom(c), pathway, formResponses(c))
	if err != nil {
		if !isHTMX(c) {
			return fiber.NewError(fiber.StatusBadGateway, controller.SubmitMessage(err))
		}
		return htmxError(c, controller.SubmitMessage(err))
	}

	if !isHTMX(c) {
		return c.Redirect().To("/pathway/" + url.PathEscape(pathway))
	}

	return c.Render("partials/results", MergeBranding(fiber.Map{
		"Cards": h.ctrl.Cards(rs),
	}, h.cfg), "")
}

// Save forwards one recommendation to the backend and reports the outcome.
func (h *RecommendationHandler) Save(c fiber.Ctx) error {
	err := h.ctrl.Save(c.Context(), middleware.SessionFrom(c), results.Handle(c.Params("handle")))

	kind := "success"
	if err != nil {
		kind = "error"
	}

	c.Set("HX-Trigger-After-Swap", alertEvent)
	return c.Render("partials/alert", fiber.Map{
		"Kind":    kind,
		"Message": controller.SaveMessage(err),
	}, "")
}

// ShowDetails opens the details modal for one card.
func (h *RecommendationHandler) ShowDetails(c fiber.Ctx) error {
	sess := middleware.SessionFrom(c)

	d, err := h.ctrl.ShowDetails(sess, results.Handle(c.Params("handle")))
	if err != nil {
		if !errors.Is(err, results.ErrStaleReference) {
			return err
		}
		if !isHTMX(c) {
			return fiber.NewError(fiber.StatusConflict, controller.MsgStale)
		}
		return htmxError(c, controller.MsgStale)
	}

	// Without HTMX the pathway page renders the open modal itself.
	if !isHTMX(c) {
		rs, _ := h.ctrl.Current(sess)
		if rs == nil {
			return c.Redirect().To(h.cfg.DashboardPath)
		}
		return c.Redirect().To("/pathway/" + url.PathEscape(rs.Pathway))
	}

	return c.Render("partials/details_modal", fiber.Map{
		"Details": d,
	}, "")
}

// CloseModal closes the details modal. Closing when none is open is fine.
func (h *RecommendationHandler) CloseModal(c fiber.Ctx) error {
	if _, err := h.ctrl.CloseModal(middleware.SessionFrom(c)); err != nil {
		return err
	}
	return c.SendString("")
}
