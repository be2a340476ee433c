// Package export reads and writes spreadsheets of products and sales.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gestorpro/internal/domain"
	"gestorpro/internal/services"
	"gestorpro/internal/validate"
)

const (
	InventorySheet = "Inventory"
	SalesSheet     = "Sales"
)

var (
	inventoryHeader = []string{"ID", "Description", "Category", "Quantity", "Buy Price", "Margin (%)", "Sell Price"}
	salesHeader     = []string{"Sale ID", "Date", "Payment", "Product", "Quantity", "Price", "Line Total", "Sale Total"}

	ErrNoSheet  = errors.New("spreadsheet has no sheets")
	ErrNoHeader = errors.New("spreadsheet has no description column")
)

// InventoryXLSX writes one row per product.
func InventoryXLSX(products []domain.Product, w io.Writer) error {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{p.ID, p.Description, p.Category, p.Quantity, p.BuyPrice, p.Margin, p.SellPrice})
	}
	return writeSheet(w, InventorySheet, inventoryHeader, rows)
}

// SalesXLSX writes one row per sold line; the sale columns repeat.
func SalesXLSX(sales []domain.Sale, w io.Writer) error {
	var rows [][]any
	for _, s := range sales {
		for _, it := range s.Items {
			rows = append(rows, []any{s.ID, s.CreatedAt, s.PaymentMethod, it.Description, it.Quantity, it.Price, it.Total, s.TotalPrice})
		}
	}
	return writeSheet(w, SalesSheet, salesHeader, rows)
}

func writeSheet(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

type columns struct {
	description, category, quantity, buyPrice, margin int
}

// mapColumns finds each field by keyword in the header row. Missing columns
// are -1.
func mapColumns(header []string) columns {
	c := columns{-1, -1, -1, -1, -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case name == "":
		case name == "id" || contains(name, "sell", "venda"):
			// derived or assigned on import
		case contains(name, "buy", "compra", "cost", "custo"):
			c.buyPrice = i
		case contains(name, "margin", "margem"):
			c.margin = i
		case contains(name, "quantity", "quantidade", "qty", "stock", "estoque"):
			c.quantity = i
		case contains(name, "category", "categoria"):
			c.category = i
		case contains(name, "description", "descri", "product", "produto", "name", "nome"):
			c.description = i
		}
	}
	return c
}

func contains(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ParseProducts reads products from the first sheet. The first row is the
// header. Rows without a description or with an unreadable number are
// skipped and counted.
func ParseProducts(r io.Reader) ([]services.ProductInput, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, 0, ErrNoHeader
	}
	cols := mapColumns(rows[0])
	if cols.description < 0 {
		return nil, 0, ErrNoHeader
	}

	var out []services.ProductInput
	skipped := 0
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		in, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		out = append(out, in)
	}
	return out, skipped, nil
}

func parseRow(row []string, cols columns) (services.ProductInput, bool) {
	in := services.ProductInput{
		Description: cell(row, cols.description),
		Category:    cell(row, cols.category),
	}
	if in.Description == "" {
		return in, false
	}
	var ok bool
	if in.BuyPrice, ok = validate.Money(cell(row, cols.buyPrice)); !ok {
		return in, false
	}
	if in.Margin, ok = validate.Money(cell(row, cols.margin)); !ok {
		return in, false
	}
	if in.Quantity, ok = quantity(cell(row, cols.quantity)); !ok {
		return in, false
	}
	return in, true
}

// quantity accepts "3" and spreadsheet renderings such as "3.0".
func quantity(s string) (int, bool) {
	if s == "" {
		return 0, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, ok := validate.Money(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
