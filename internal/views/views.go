// Package views turns a state snapshot into template data, one function per
// tab.
package views

import (
	"github.com/gofiber/fiber/v2"

	"gestorpro/internal/domain"
	"gestorpro/internal/pricing"
	"gestorpro/internal/repos"
	"gestorpro/internal/services"
	"gestorpro/internal/state"
)

// Page is a template name plus its data.
type Page struct {
	Template string
	Data     fiber.Map
}

// Render picks the view for the active tab.
func Render(st state.State) Page {
	switch st.ActiveTab {
	case domain.TabDashboard:
		return Dashboard(st)
	case domain.TabInventory:
		return Inventory(st)
	case domain.TabSales:
		return Sales(st)
	case domain.TabQuotes:
		return Quotes(st)
	}
	return Dashboard(st)
}

func base(st state.State, tab domain.Tab) fiber.Map {
	return fiber.Map{
		"Tabs":   domain.Tabs,
		"Active": tab,
		"User":   st.CurrentUser,
		"Notice": st.Notice,
	}
}

func Dashboard(st state.State) Page {
	d := services.Summarize(st.Products, st.Sales, st.Quotes)
	tallest := 0
	for _, b := range d.TopStock {
		if b.Quantity > tallest {
			tallest = b.Quantity
		}
	}
	data := base(st, domain.TabDashboard)
	data["Dash"] = d
	data["Bars"] = bars(d.TopStock, tallest)
	return Page{Template: "dashboard", Data: data}
}

// Bar is a chart bar with its height as a percentage of the tallest one.
type Bar struct {
	services.StockBar
	Percent int
}

func bars(top []services.StockBar, tallest int) []Bar {
	out := make([]Bar, 0, len(top))
	for _, b := range top {
		pct := 0
		if tallest > 0 && b.Quantity > 0 {
			pct = b.Quantity * 100 / tallest
		}
		out = append(out, Bar{StockBar: b, Percent: pct})
	}
	return out
}

// ProductRow is a product plus its stock badge.
type ProductRow struct {
	domain.Product
	Availability domain.Availability
	Drifted      bool
}

func Inventory(st state.State) Page {
	filtered := services.Filter(st.Products, st.Query, st.Category)
	rows := make([]ProductRow, 0, len(filtered))
	for _, p := range filtered {
		rows = append(rows, ProductRow{Product: p, Availability: services.Availability(p.Quantity), Drifted: pricing.Drifted(p)})
	}
	data := base(st, domain.TabInventory)
	data["Rows"] = rows
	data["Categories"] = repos.Categories(st.Products)
	data["Editing"] = st.EditingProduct
	data["Query"] = st.Query
	data["Category"] = st.Category
	data["Total"] = len(st.Products)
	return Page{Template: "inventory", Data: data}
}

func Sales(st state.State) Page {
	data := base(st, domain.TabSales)
	data["Products"] = st.Products
	data["Cart"] = st.Cart
	data["CartTotal"] = pricing.SumLines(st.Cart)
	data["PaymentMethods"] = services.PaymentMethods
	data["Sales"] = newestSales(st.Sales)
	return Page{Template: "sales", Data: data}
}

func Quotes(st state.State) Page {
	data := base(st, domain.TabQuotes)
	data["Products"] = st.Products
	data["Draft"] = st.QuoteDraft
	if st.QuoteDraft != nil {
		data["DraftTotal"] = pricing.SumLines(st.QuoteDraft.Items)
	}
	data["Quotes"] = newestQuotes(st.Quotes)
	return Page{Template: "quotes", Data: data}
}

func newestSales(in []domain.Sale) []domain.Sale {
	out := make([]domain.Sale, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

func newestQuotes(in []domain.Quote) []domain.Quote {
	out := make([]domain.Quote, len(in))
	for i, q := range in {
		out[len(in)-1-i] = q
	}
	return out
}
