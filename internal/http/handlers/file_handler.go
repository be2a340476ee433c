package handlers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"gestorpro/internal/export"
	applog "gestorpro/internal/log"
	"gestorpro/internal/state"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type FileHandler struct {
	Ctl *state.Controller
}

func sendXLSX(c *fiber.Ctx, name string, buf *bytes.Buffer) error {
	c.Attachment(fmt.Sprintf("%s-%s.xlsx", name, time.Now().Format("2006-01-02")))
	c.Set(fiber.HeaderContentType, xlsxMIME)
	return c.Send(buf.Bytes())
}

// GET /export/inventory.xlsx
func (h *FileHandler) Inventory(c *fiber.Ctx) error {
	st := h.Ctl.Peek()
	var buf bytes.Buffer
	if err := export.InventoryXLSX(st.Products, &buf); err != nil {
		return err
	}
	applog.Audit(c, "export.inventory", map[string]any{"rows": len(st.Products)})
	return sendXLSX(c, "inventory", &buf)
}

// GET /export/sales.xlsx
func (h *FileHandler) Sales(c *fiber.Ctx) error {
	st := h.Ctl.Peek()
	var buf bytes.Buffer
	if err := export.SalesXLSX(st.Sales, &buf); err != nil {
		return err
	}
	applog.Audit(c, "export.sales", map[string]any{"sales": len(st.Sales)})
	return sendXLSX(c, "sales", &buf)
}

// POST /import/products takes a multipart "file" field.
func (h *FileHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		h.Ctl.Notify("Choose a spreadsheet to import")
		return home(c)
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	inputs, unreadable, err := export.ParseProducts(f)
	if err != nil {
		applog.Warn(c, "import.products.fail", err, map[string]any{"file": fh.Filename})
		h.Ctl.Notify("Could not read spreadsheet: " + err.Error())
		return home(c)
	}
	added, skipped, err := h.Ctl.ImportProducts(inputs)
	if err != nil {
		rejected(c, "import.products", err)
		return home(c)
	}
	skipped += unreadable
	applog.Audit(c, "import.products", map[string]any{"file": fh.Filename, "added": added, "skipped": skipped})
	h.Ctl.Notify(fmt.Sprintf("Imported %d products (%d rows skipped)", added, skipped))
	return home(c)
}
