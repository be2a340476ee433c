package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"gestorpro/internal/config"
	"gestorpro/internal/http/handlers"
	applog "gestorpro/internal/log"
	"gestorpro/internal/repos"
	"gestorpro/internal/store"
)

func main() {
	cfg := config.Load()

	// The data directory holds the document, the session db and the log
	st := store.New(cfg.DataDir)
	st.Initialize()

	if cfg.LogFile != "" {
		if f, err := applog.Tee(cfg.LogFile); err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
		}
	}

	db, err := repos.OpenDB(cfg.SessionDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	engine := handlers.NewEngine(cfg.TemplatesDir)
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})
	// xlsx uploads
	app.Server().MaxRequestBodySize = 8 << 20

	// ---------- Middlewares ----------
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // loopback only
		ErrorHandler:   handlers.CSRFFailed,
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok, ok := c.Locals("csrf").(string); ok {
			c.Locals("CSRFToken", tok)
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(st, db, func() {
		applog.Info(nil, "shell.shutdown", nil)
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			applog.Error(nil, "shell.shutdown.fail", err, nil)
		}
	})
	handlers.Mount(app, deps, limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."}, handlers.Layout)
		},
	}))

	addr := "127.0.0.1:" + cfg.Port
	applog.Info(nil, "server.start", map[string]any{"addr": "http://" + addr, "data": st.Path()})
	if err := app.Listen(addr); err != nil {
		log.Fatal(err)
	}
}
