package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "gestorpro/internal/log"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
	"gestorpro/internal/validate"
)

type QuoteHandler struct {
	Ctl *state.Controller
}

// POST /quotes/new
func (h *QuoteHandler) New(c *fiber.Ctx) error {
	h.Ctl.NewQuote()
	return home(c)
}

// GET /quotes/:id/edit
func (h *QuoteHandler) Edit(c *fiber.Ctx) error {
	if err := h.Ctl.EditQuote(c.Params("id")); err != nil {
		rejected(c, "quote.edit", err)
	}
	return home(c)
}

// POST /quotes/cancel
func (h *QuoteHandler) Cancel(c *fiber.Ctx) error {
	h.Ctl.CancelQuote()
	return home(c)
}

// header keeps whatever the user typed into the customer fields; every draft
// form posts them along.
func (h *QuoteHandler) header(c *fiber.Ctx) {
	h.Ctl.UpdateQuoteHeader(
		c.FormValue("customer"),
		c.FormValue("customerEmail"),
		c.FormValue("customerPhone"),
		c.FormValue("validity"),
	)
}

// POST /quotes/items
func (h *QuoteHandler) Add(c *fiber.Ctx) error {
	h.header(c)
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		h.Ctl.Notify(services.ErrNoProduct.Error())
		return home(c)
	}
	if err := h.Ctl.AddToQuote(c.FormValue("productId"), qty); err != nil {
		rejected(c, "quote.item.add", err)
	}
	return home(c)
}

// POST /quotes/items/:index/delete
func (h *QuoteHandler) Remove(c *fiber.Ctx) error {
	if i, ok := validate.Index(c.Params("index")); ok {
		h.Ctl.RemoveFromQuote(i)
	}
	return home(c)
}

// POST /quotes
func (h *QuoteHandler) Save(c *fiber.Ctx) error {
	h.header(c)
	q, err := h.Ctl.SaveQuote()
	if err != nil {
		rejected(c, "quote.save", err)
		return home(c)
	}
	applog.Audit(c, "quote.save", map[string]any{"quote_id": q.ID, "total": q.TotalPrice})
	h.Ctl.Notify("Quote saved")
	return home(c)
}

// POST /quotes/:id/delete needs confirm=yes.
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.Ctl.DeleteQuote(id, c.FormValue("confirm") == "yes"); err != nil {
		rejected(c, "quote.delete", err)
		return home(c)
	}
	applog.Audit(c, "quote.delete", map[string]any{"quote_id": id})
	return home(c)
}

// GET /quotes/:id/print
func (h *QuoteHandler) Print(c *fiber.Ctx) error {
	q, err := h.Ctl.Quote(c.Params("id"))
	if errors.Is(err, services.ErrQuoteNotFound) {
		return notFound(c, "Quote not found")
	}
	if err != nil {
		return err
	}
	return render(c, "quote_print", fiber.Map{"Quote": q})
}
