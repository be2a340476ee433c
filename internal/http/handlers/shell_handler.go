package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/state"
)

// ShellHandler covers what the desktop window used to do for the app.
type ShellHandler struct {
	Ctl  *state.Controller
	Quit func()
}

// POST /quit needs confirm=yes. The response is sent before Quit runs.
func (h *ShellHandler) QuitApp(c *fiber.Ctx) error {
	if c.FormValue("confirm") != "yes" {
		h.Ctl.Notify("Confirm to quit GestorPro")
		return home(c)
	}
	applog.Audit(c, "shell.quit", nil)
	if h.Quit != nil {
		go h.Quit()
	}
	return render(c, "goodbye", nil, Layout)
}

// GET /healthz
func Health(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) }
