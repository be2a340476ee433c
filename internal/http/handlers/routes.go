package handlers

import "github.com/gofiber/fiber/v2"

// Mount registers every route. loginLimit guards POST /login and POST
// /register; pass nil to leave them unthrottled.
func Mount(app *fiber.App, d *Deps, loginLimit fiber.Handler) {
	if loginLimit == nil {
		loginLimit = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/healthz", Health)

	// Auth
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", loginLimit, d.AuthHandler.Login)
	app.Post("/register", loginLimit, d.AuthHandler.Register)

	// Everything else needs a session
	app.Use(RequireUser(d.Ctl))
	app.Post("/logout", d.AuthHandler.Logout)
	app.Post("/quit", d.ShellHandler.QuitApp)

	app.Get("/", d.TabHandler.Home)
	app.Get("/tab/:name", d.TabHandler.Switch)

	// Inventory
	app.Post("/products", d.InventoryHandler.Save)
	app.Post("/products/cancel", d.InventoryHandler.Cancel)
	app.Get("/products/:id/edit", d.InventoryHandler.Edit)
	app.Post("/products/:id/delete", d.InventoryHandler.Delete)

	// Sales
	app.Post("/sales/new", d.SaleHandler.New)
	app.Post("/cart", d.SaleHandler.Add)
	app.Post("/cart/:index/delete", d.SaleHandler.Remove)
	app.Post("/sales", d.SaleHandler.Commit)

	// Quotes
	app.Post("/quotes/new", d.QuoteHandler.New)
	app.Post("/quotes/cancel", d.QuoteHandler.Cancel)
	app.Post("/quotes/items", d.QuoteHandler.Add)
	app.Post("/quotes/items/:index/delete", d.QuoteHandler.Remove)
	app.Post("/quotes", d.QuoteHandler.Save)
	app.Get("/quotes/:id/edit", d.QuoteHandler.Edit)
	app.Get("/quotes/:id/print", d.QuoteHandler.Print)
	app.Post("/quotes/:id/delete", d.QuoteHandler.Delete)

	// Spreadsheets
	app.Get("/export/inventory.xlsx", d.FileHandler.Inventory)
	app.Get("/export/sales.xlsx", d.FileHandler.Sales)
	app.Post("/import/products", d.FileHandler.Import)

	app.Use(func(c *fiber.Ctx) error {
		return notFound(c, "Page not found")
	})
}
