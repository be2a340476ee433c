package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gestorpro/internal/log"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/validate"
)

type AuthHandler struct {
	Ctl *state.Controller
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if h.Ctl.User() != nil {
		return home(c)
	}
	return render(c, "login", fiber.Map{"Err": ""}, Layout)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return h.loginError(c, fiber.StatusUnauthorized, fiber.Map{"Err": "Invalid email or password"})
	}
	if err := h.Ctl.Login(email, pass); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return h.loginError(c, fiber.StatusUnauthorized, fiber.Map{"Err": "Invalid email or password"})
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return home(c)
}

// POST /register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	err := h.Ctl.Register(name, email, c.FormValue("password"))
	switch {
	case err == nil:
		log.Audit(c, "auth.register.success", map[string]any{"email": email})
		return home(c)
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrInvalidSignup):
		log.Security(c, "auth.register.fail", map[string]any{"email": email, "reason": err.Error()})
		return h.loginError(c, fiber.StatusBadRequest, fiber.Map{"RegErr": err.Error(), "Name": name, "RegEmail": email})
	default:
		return err
	}
}

func (h *AuthHandler) loginError(c *fiber.Ctx, status int, data fiber.Map) error {
	c.Status(status)
	return render(c, "login", data, Layout)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	u := h.Ctl.User()
	if err := h.Ctl.Logout(); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	if u != nil {
		log.Audit(c, "auth.logout", map[string]any{"email": u.Email})
	}
	return c.Redirect("/login")
}
