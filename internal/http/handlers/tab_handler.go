package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gestorpro/internal/domain"
	"gestorpro/internal/state"
	"gestorpro/internal/validate"
)

type TabHandler struct {
	Ctl *state.Controller
}

// GET /
func (h *TabHandler) Home(c *fiber.Ctx) error {
	return show(c, h.Ctl)
}

// GET /tab/:name switches tabs. The inventory tab also takes the q and
// category filters; absent or invalid filters clear them.
func (h *TabHandler) Switch(c *fiber.Ctx) error {
	tab, ok := domain.ParseTab(c.Params("name"))
	if !ok {
		return notFound(c, "Page not found")
	}
	if tab == domain.TabInventory {
		h.Ctl.SetFilter(filter(c.Query("q")), filter(c.Query("category")))
	}
	h.Ctl.SetTab(tab)
	return show(c, h.Ctl)
}

func filter(s string) string {
	if q, ok := validate.Q(s); ok {
		return q
	}
	return ""
}
