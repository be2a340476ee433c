package services

import (
	"fmt"
	"math"
	"strings"

	"gestorpro/internal/domain"
	applog "gestorpro/internal/log"
	"gestorpro/internal/pricing"
	"gestorpro/internal/repos"
)

// ProductInput is what the product form submits. An empty ID creates a new
// product.
type ProductInput struct {
	ID          string
	Description string
	Category    string
	Quantity    int
	BuyPrice    float64
	Margin      float64
}

type InventoryService struct {
	Products *repos.ProductRepo
	IDs      *IDGen
}

func NewInventoryService(products *repos.ProductRepo, ids *IDGen) *InventoryService {
	return &InventoryService{Products: products, IDs: ids}
}

func (in ProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Description) == "":
		return fmt.Errorf("%w: description is required", ErrInvalidProduct)
	case in.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	case in.BuyPrice < 0 || math.IsNaN(in.BuyPrice) || math.IsInf(in.BuyPrice, 0):
		return fmt.Errorf("%w: buy price must be zero or more", ErrInvalidProduct)
	case math.IsNaN(in.Margin) || math.IsInf(in.Margin, 0):
		return fmt.Errorf("%w: margin must be a number", ErrInvalidProduct)
	}
	return nil
}

func (s *InventoryService) build(in ProductInput) domain.Product {
	id := in.ID
	if id == "" {
		id = s.IDs.NextString()
	}
	return domain.Product{
		ID:          id,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		BuyPrice:    in.BuyPrice,
		Margin:      in.Margin,
		SellPrice:   pricing.SellPrice(in.BuyPrice, in.Margin),
	}
}

// Save creates or replaces a product; sellPrice is always re-derived here.
func (s *InventoryService) Save(in ProductInput) (domain.Product, error) {
	if err := in.validate(); err != nil {
		return domain.Product{}, err
	}
	p := s.build(in)
	products := s.Products.All()
	replaced := false
	if in.ID != "" {
		for i := range products {
			if products[i].ID == in.ID {
				products[i] = p
				replaced = true
				break
			}
		}
	}
	if !replaced {
		products = append(products, p)
	}
	if !s.Products.Replace(products) {
		return domain.Product{}, ErrPersist
	}
	applog.Audit(nil, "inventory.product.save", map[string]any{"product": p.ID, "new": !replaced})
	return p, nil
}

func (s *InventoryService) Delete(id string) error {
	products := s.Products.All()
	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if !s.Products.Replace(kept) {
		return ErrPersist
	}
	applog.Audit(nil, "inventory.product.delete", map[string]any{"product": id})
	return nil
}

// Import appends every valid input as a new product in one write. Invalid
// rows are skipped and counted.
func (s *InventoryService) Import(inputs []ProductInput) (added, skipped int, err error) {
	products := s.Products.All()
	for _, in := range inputs {
		in.ID = ""
		if in.validate() != nil {
			skipped++
			continue
		}
		products = append(products, s.build(in))
		added++
	}
	if added == 0 {
		return 0, skipped, nil
	}
	if !s.Products.Replace(products) {
		return 0, skipped, ErrPersist
	}
	applog.Audit(nil, "inventory.import", map[string]any{"added": added, "skipped": skipped})
	return added, skipped, nil
}

// Filter narrows products by a description substring and an exact category
// (both case-insensitive). Empty arguments match everything.
func Filter(products []domain.Product, q, category string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	category = strings.TrimSpace(category)
	var out []domain.Product
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if category != "" && !strings.EqualFold(strings.TrimSpace(p.Category), category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Availability converts a quantity to IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func Availability(qty int) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty > LowStockThreshold:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: qty}
}
