package repos

import (
	"gestorpro/internal/domain"
	"gestorpro/internal/store"
)

type SaleRepo struct{ t store.Tables }

func NewSaleRepo(t store.Tables) *SaleRepo { return &SaleRepo{t: t} }

func (r *SaleRepo) All() []domain.Sale {
	return store.Load[domain.Sale](r.t, store.Sales)
}

// Record decrements stock for every sold line and appends sale, writing the
// products and sales collections in one document write. Lines whose product
// no longer exists are skipped.
func (r *SaleRepo) Record(sale domain.Sale) bool {
	return r.t.Update(func(doc store.Document) error {
		products, err := store.Decode[domain.Product](doc, store.Products)
		if err != nil {
			return err
		}
		sales, err := store.Decode[domain.Sale](doc, store.Sales)
		if err != nil {
			return err
		}
		for _, it := range sale.Items {
			for i := range products {
				if products[i].ID == it.ID {
					products[i].Quantity -= it.Quantity
					break
				}
			}
		}
		sales = append(sales, sale)
		if err := doc.Set(store.Products, products); err != nil {
			return err
		}
		return doc.Set(store.Sales, sales)
	})
}
