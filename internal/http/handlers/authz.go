package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/state"
)

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(ctl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := ctl.User()
		if u == nil {
			applog.Security(c, "access.denied.anonymous", nil)
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
