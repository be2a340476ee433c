package services

import (
	"strings"
	"time"

	"gestorpro/internal/domain"
	applog "gestorpro/internal/log"
	"gestorpro/internal/pricing"
	"gestorpro/internal/repos"
)

// DefaultPaymentMethod is used when the sale form leaves payment blank.
const DefaultPaymentMethod = "cash"

// PaymentMethods are offered in the sale form.
var PaymentMethods = []string{"cash", "credit", "debit", "pix"}

type SaleService struct {
	Sales *repos.SaleRepo
	IDs   *IDGen
}

func NewSaleService(sales *repos.SaleRepo, ids *IDGen) *SaleService {
	return &SaleService{Sales: sales, IDs: ids}
}

// AddToCart appends a snapshot of the product to cart. The requested quantity
// is checked against current stock here and only here.
func (s *SaleService) AddToCart(cart []domain.LineItem, products []domain.Product, productID string, qty int) ([]domain.LineItem, error) {
	if productID == "" || qty < 1 {
		return cart, ErrNoProduct
	}
	p, ok := repos.Find(products, productID)
	if !ok {
		return cart, ErrNoProduct
	}
	if p.Quantity < qty {
		return cart, ErrInsufficientStock
	}
	return append(cloneLines(cart), pricing.NewLine(p, qty)), nil
}

// Commit turns the cart into a persisted sale and decrements stock. Stock is
// not re-checked; a line whose product was deleted still counts toward the
// total but touches no stock.
func (s *SaleService) Commit(cart []domain.LineItem, paymentMethod string) (domain.Sale, error) {
	if len(cart) == 0 {
		return domain.Sale{}, ErrEmptyCart
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}
	id := s.IDs.Next()
	sale := domain.Sale{
		ID:            id,
		Items:         cloneLines(cart),
		TotalPrice:    pricing.SumLines(cart),
		PaymentMethod: paymentMethod,
		CreatedAt:     Timestamp(time.UnixMilli(id)),
	}
	if !s.Sales.Record(sale) {
		return domain.Sale{}, ErrPersist
	}
	applog.Audit(nil, "sale.commit", map[string]any{
		"sale_id": sale.ID, "items": len(sale.Items), "total": sale.TotalPrice, "payment": sale.PaymentMethod,
	})
	return sale, nil
}

// RemoveLine drops the item at index; an out-of-range index is a no-op.
func RemoveLine(items []domain.LineItem, index int) []domain.LineItem {
	if index < 0 || index >= len(items) {
		return items
	}
	out := make([]domain.LineItem, 0, len(items)-1)
	out = append(out, items[:index]...)
	return append(out, items[index+1:]...)
}

func cloneLines(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return nil
	}
	return append([]domain.LineItem(nil), items...)
}
