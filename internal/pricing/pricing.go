// Package pricing does the money arithmetic in decimal and hands back
// cent-rounded float64 values for the JSON document.
package pricing

import (
	"github.com/shopspring/decimal"

	"gestorpro/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	// DriftTolerance is half a cent: anything below rounds to the same price.
	DriftTolerance = decimal.New(5, -3)
)

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// SellPrice is buy * (1 + margin/100), rounded to cents.
func SellPrice(buy, margin float64) float64 {
	return round2(sellPrice(buy, margin))
}

func sellPrice(buy, margin float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(margin).Div(hundred))
	return decimal.NewFromFloat(buy).Mul(factor)
}

// LineTotal is price * qty, rounded to cents.
func LineTotal(price float64, qty int) float64 {
	return round2(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
}

// NewLine snapshots a product into a line item.
func NewLine(p domain.Product, qty int) domain.LineItem {
	return domain.LineItem{
		ID:          p.ID,
		Description: p.Description,
		Quantity:    qty,
		Price:       p.SellPrice,
		Total:       LineTotal(p.SellPrice, qty),
	}
}

// SumLines adds the stored line totals.
func SumLines(items []domain.LineItem) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.Total))
	}
	return round2(sum)
}

// Revenue adds every sale's totalPrice.
func Revenue(sales []domain.Sale) float64 {
	sum := decimal.Zero
	for _, s := range sales {
		sum = sum.Add(decimal.NewFromFloat(s.TotalPrice))
	}
	return round2(sum)
}

// StockValue is the sum of buyPrice * quantity.
func StockValue(products []domain.Product) float64 {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(decimal.NewFromFloat(p.BuyPrice).Mul(decimal.NewFromInt(int64(p.Quantity))))
	}
	return round2(sum)
}

// Drifted reports whether the stored sellPrice no longer matches buyPrice
// and margin.
func Drifted(p domain.Product) bool {
	diff := decimal.NewFromFloat(p.SellPrice).Sub(sellPrice(p.BuyPrice, p.Margin)).Abs()
	return diff.GreaterThanOrEqual(DriftTolerance)
}
