package repos

import (
	"gestorpro/internal/domain"
	"gestorpro/internal/store"
)

type QuoteRepo struct{ t store.Tables }

func NewQuoteRepo(t store.Tables) *QuoteRepo { return &QuoteRepo{t: t} }

func (r *QuoteRepo) All() []domain.Quote {
	return store.Load[domain.Quote](r.t, store.Quotes)
}

func (r *QuoteRepo) Replace(quotes []domain.Quote) bool {
	return r.t.ReplaceCollection(store.Quotes, quotes)
}

func (r *QuoteRepo) Get(id string) (domain.Quote, bool) {
	for _, q := range r.All() {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Quote{}, false
}
