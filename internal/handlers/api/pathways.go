package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"pathways/internal/controller"
	"pathways/internal/middleware"
	"pathways/internal/models"
	"pathways/internal/results"
)

// PathwayHandler exposes the catalog and questionnaire submission as JSON.
type PathwayHandler struct {
	ctrl *controller.Controller
}

// NewPathwayHandler creates a new API pathway handler.
func NewPathwayHandler(ctrl *controller.Controller) *PathwayHandler {
	return &PathwayHandler{ctrl: ctrl}
}

// List returns the pathway definitions.
func (h *PathwayHandler) List(c fiber.Ctx) error {
	catalog := h.ctrl.Catalog()
	defs := make([]models.PathwayDef, 0, len(catalog))
	for _, name := range catalog.Names() {
		def, _ := catalog.Lookup(name)
		defs = append(defs, def)
	}
	return jsonSuccess(c, defs)
}

// submitResult is the JSON form of a stored result set.
type submitResult struct {
	ResultSet string         `json:"result_set"`
	Pathway   string         `json:"pathway"`
	Cards     []results.Card `json:"cards"`
}

// Submit forwards {"responses": {...}} and returns the rendered cards.
func (h *PathwayHandler) Submit(c fiber.Ctx) error {
	var body struct {
		Responses map[string]any `json:"responses"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	rs, err := h.ctrl.Submit(c.Context(), middleware.SessionFrom(c), c.Params("pathway"), body.Responses)
	if err != nil {
		return jsonOperationError(c, err, controller.SubmitMessage(err))
	}

	return jsonSuccess(c, submitResult{
		ResultSet: rs.ID.String(),
		Pathway:   rs.Pathway,
		Cards:     h.ctrl.Cards(rs),
	})
}
