package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/state"
	"gestorpro/internal/views"
)

// Layout wraps every screen except the print page.
const Layout = "layouts/main"

// NewEngine loads the templates under dir with the helpers they use.
func NewEngine(dir string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("money", func(v float64) string { return fmt.Sprintf("%.2f", v) })
	engine.AddFunc("date", func(iso string) string {
		t, err := time.Parse(time.RFC3339Nano, iso)
		if err != nil {
			return iso
		}
		return t.Local().Format("02/01/2006 15:04")
	})
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	return engine
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map, layout ...string) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["User"]; !ok {
		if u := c.Locals("user"); u != nil {
			data["User"] = u
		}
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// first request of a session: the middleware has only set the cookie
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data, layout...)
}

// show renders whatever tab the controller is on.
func show(c *fiber.Ctx, ctl *state.Controller) error {
	p := views.Render(ctl.Snapshot())
	return render(c, p.Template, p.Data, Layout)
}

// home is where every form action lands afterwards.
func home(c *fiber.Ctx) error { return c.Redirect("/") }

// rejected logs a refused action. The controller has already set the notice
// the next render shows.
func rejected(c *fiber.Ctx, action string, err error) {
	applog.Warn(c, action+".fail", err, nil)
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg}, Layout)
}

// ErrorHandler logs the error and shows a generic page without internals.
// Client errors keep their status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
		msg = "That request could not be handled."
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}, Layout); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// CSRFFailed is the csrf middleware's error handler.
func CSRFFailed(c *fiber.Ctx, err error) error {
	applog.Security(c, "csrf.fail", map[string]any{"path": c.Path()})
	return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."}, Layout)
}
