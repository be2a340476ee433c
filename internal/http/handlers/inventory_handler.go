package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/validate"
)

type InventoryHandler struct {
	Ctl *state.Controller
}

// POST /products creates a product, or replaces the one named by the id
// field.
func (h *InventoryHandler) Save(c *fiber.Ctx) error {
	in, msg := productForm(c)
	if msg != "" {
		h.Ctl.Notify(msg)
		return home(c)
	}
	if err := h.Ctl.SaveProduct(in); err != nil {
		rejected(c, "inventory.product.save", err)
		return home(c)
	}
	applog.Audit(c, "inventory.product.save", map[string]any{"product": in.ID, "description": in.Description})
	return home(c)
}

func productForm(c *fiber.Ctx) (services.ProductInput, string) {
	in := services.ProductInput{
		ID:          strings.TrimSpace(c.FormValue("id")),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}
	if in.ID != "" {
		if _, ok := validate.ID(in.ID); !ok {
			return in, "Invalid product id"
		}
	}
	var ok bool
	if in.Quantity, ok = validate.Stock(c.FormValue("quantity")); !ok {
		return in, "Quantity must be a whole number of zero or more"
	}
	if in.BuyPrice, ok = validate.Money(c.FormValue("buyPrice")); !ok {
		return in, "Buy price must be a number"
	}
	if in.Margin, ok = validate.Money(c.FormValue("margin")); !ok {
		return in, "Margin must be a number"
	}
	return in, ""
}

// GET /products/:id/edit
func (h *InventoryHandler) Edit(c *fiber.Ctx) error {
	h.Ctl.EditProduct(c.Params("id"))
	return home(c)
}

// POST /products/cancel
func (h *InventoryHandler) Cancel(c *fiber.Ctx) error {
	h.Ctl.CancelEdit()
	return home(c)
}

// POST /products/:id/delete
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Ctl.DeleteProduct(id); err != nil {
		rejected(c, "inventory.product.delete", err)
		return home(c)
	}
	applog.Audit(c, "inventory.product.delete", map[string]any{"product": id})
	return home(c)
}
