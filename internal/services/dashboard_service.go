package services

import (
	"sort"

	"gestorpro/internal/domain"
	"gestorpro/internal/pricing"
)

// LowStockThreshold: products at or below it are flagged.
const LowStockThreshold = 5

// StockBar is one bar of the stock chart.
type StockBar struct {
	Label    string
	Quantity int
}

type Dashboard struct {
	Revenue      float64
	StockValue   float64
	LowStock     []domain.Product
	TopStock     []StockBar
	Drifted      []domain.Product
	ProductCount int
	SaleCount    int
	QuoteCount   int
}

// Summarize derives every dashboard figure from the given collections. It
// never writes.
func Summarize(products []domain.Product, sales []domain.Sale, quotes []domain.Quote) Dashboard {
	return Dashboard{
		Revenue:      pricing.Revenue(sales),
		StockValue:   pricing.StockValue(products),
		LowStock:     LowStock(products),
		TopStock:     TopStock(products, 10),
		Drifted:      PriceDrift(products),
		ProductCount: len(products),
		SaleCount:    len(sales),
		QuoteCount:   len(quotes),
	}
}

func LowStock(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if p.Quantity <= LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// TopStock returns the n products with the most units, labels cut to eight
// runes.
func TopStock(products []domain.Product, n int) []StockBar {
	sorted := append([]domain.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity > sorted[j].Quantity })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	out := make([]StockBar, 0, len(sorted))
	for _, p := range sorted {
		out = append(out, StockBar{Label: shortLabel(p.Description), Quantity: p.Quantity})
	}
	return out
}

func shortLabel(s string) string {
	r := []rune(s)
	if len(r) > 8 {
		r = r[:8]
	}
	return string(r) + "..."
}

// PriceDrift lists products whose stored sellPrice disagrees with buyPrice
// and margin.
func PriceDrift(products []domain.Product) []domain.Product {
	var out []domain.Product
	for _, p := range products {
		if pricing.Drifted(p) {
			out = append(out, p)
		}
	}
	return out
}
