package repos

import (
	"sort"
	"strings"

	"gestorpro/internal/domain"
	"gestorpro/internal/store"
)

type ProductRepo struct{ t store.Tables }

func NewProductRepo(t store.Tables) *ProductRepo { return &ProductRepo{t: t} }

func (r *ProductRepo) All() []domain.Product {
	return store.Load[domain.Product](r.t, store.Products)
}

// Replace overwrites the whole products table.
func (r *ProductRepo) Replace(products []domain.Product) bool {
	return r.t.ReplaceCollection(store.Products, products)
}

// Find returns the product with id, or false.
func Find(products []domain.Product, id string) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Categories lists the distinct non-empty categories, sorted.
func Categories(products []domain.Product) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(c)]; ok {
			continue
		}
		seen[strings.ToLower(c)] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
