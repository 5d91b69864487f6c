package handlers

import (
	"github.com/gofiber/fiber/v3"

	"pathways/internal/config"
	"pathways/internal/controller"
	"pathways/internal/middleware"
	"pathways/internal/models"
)

// PageHandler renders the full pages.
type PageHandler struct {
	ctrl *controller.Controller
	cfg  *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(ctrl *controller.Controller, cfg *config.Config) *PageHandler {
	return &PageHandler{ctrl: ctrl, cfg: cfg}
}

// Index sends visitors to the dashboard.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Redirect().To(h.cfg.DashboardPath)
}

// Dashboard lists the available pathways.
func (h *PageHandler) Dashboard(c fiber.Ctx) error {
	catalog := h.ctrl.Catalog()
	pathways := make([]models.PathwayDef, 0, len(catalog))
	for _, name := range catalog.Names() {
		def, _ := catalog.Lookup(name)
		pathways = append(pathways, def)
	}

	return c.Render("dashboard", MergeBranding(fiber.Map{
		"Title":    "Dashboard",
		"Pathways": pathways,
	}, h.cfg))
}

// Pathway renders a questionnaire page. When the session's result set belongs
// to this pathway its cards, and the open modal if any, are rendered too.
func (h *PageHandler) Pathway(c fiber.Ctx) error {
	def, ok := h.ctrl.Catalog().Lookup(c.Params("pathway"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Pathway not found")
	}

	data := fiber.Map{
		"Title":   def.Title,
		"Pathway": def,
	}

	rs, details := h.ctrl.Current(middleware.SessionFrom(c))
	if rs != nil && rs.Pathway == def.Name {
		data["HasResults"] = true
		data["Cards"] = h.ctrl.Cards(rs)
		if details != nil {
			data["Details"] = details
		}
	}

	return c.Render("pathway", MergeBranding(data, h.cfg))
}
