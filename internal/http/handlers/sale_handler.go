package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/validate"
)

type SaleHandler struct {
	Ctl *state.Controller
}

// POST /sales/new
func (h *SaleHandler) New(c *fiber.Ctx) error {
	h.Ctl.NewSale()
	return home(c)
}

// POST /cart
func (h *SaleHandler) Add(c *fiber.Ctx) error {
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		h.Ctl.Notify(services.ErrNoProduct.Error())
		return home(c)
	}
	if err := h.Ctl.AddToCart(c.FormValue("productId"), qty); err != nil {
		rejected(c, "sale.cart.add", err)
	}
	return home(c)
}

// POST /cart/:index/delete
func (h *SaleHandler) Remove(c *fiber.Ctx) error {
	if i, ok := validate.Index(c.Params("index")); ok {
		h.Ctl.RemoveFromCart(i)
	}
	return home(c)
}

// POST /sales
func (h *SaleHandler) Commit(c *fiber.Ctx) error {
	sale, err := h.Ctl.CommitSale(c.FormValue("paymentMethod"))
	if err != nil {
		rejected(c, "sale.commit", err)
		return home(c)
	}
	applog.Audit(c, "sale.commit", map[string]any{"sale_id": sale.ID, "total": sale.TotalPrice, "payment": sale.PaymentMethod})
	h.Ctl.Notify("Sale recorded")
	return home(c)
}
