package services

import (
	"strings"

	"gestorpro/internal/domain"
	applog "gestorpro/internal/log"
	"gestorpro/internal/pricing"
	"gestorpro/internal/repos"
)

// DefaultValidity is the validity (days) of a new quote.
const DefaultValidity = "7"

type QuoteService struct {
	Quotes *repos.QuoteRepo
	IDs    *IDGen
}

func NewQuoteService(quotes *repos.QuoteRepo, ids *IDGen) *QuoteService {
	return &QuoteService{Quotes: quotes, IDs: ids}
}

func (s *QuoteService) NewDraft() domain.QuoteDraft {
	return domain.QuoteDraft{Validity: DefaultValidity}
}

// LoadDraft opens a saved quote for editing; the draft keeps its ID.
func (s *QuoteService) LoadDraft(id string) (domain.QuoteDraft, error) {
	q, ok := s.Quotes.Get(id)
	if !ok {
		return domain.QuoteDraft{}, ErrQuoteNotFound
	}
	validity := q.Validity
	if validity == "" {
		validity = DefaultValidity
	}
	return domain.QuoteDraft{
		ID:            q.ID,
		Customer:      q.Customer,
		CustomerEmail: q.CustomerEmail,
		CustomerPhone: q.CustomerPhone,
		Validity:      validity,
		Items:         cloneLines(q.Items),
	}, nil
}

// AddItem snapshots the product's description and sell price into the draft.
// Quotes do not check stock.
func (s *QuoteService) AddItem(d domain.QuoteDraft, products []domain.Product, productID string, qty int) (domain.QuoteDraft, error) {
	if productID == "" || qty < 1 {
		return d, ErrNoProduct
	}
	p, ok := repos.Find(products, productID)
	if !ok {
		return d, ErrNoProduct
	}
	d.Items = append(cloneLines(d.Items), pricing.NewLine(p, qty))
	return d, nil
}

func (s *QuoteService) RemoveItem(d domain.QuoteDraft, index int) domain.QuoteDraft {
	d.Items = RemoveLine(d.Items, index)
	return d
}

// Save persists the draft. A draft without an ID gets a fresh ID and
// createdAt; a draft with an ID replaces that quote in place and keeps its
// original createdAt.
func (s *QuoteService) Save(d domain.QuoteDraft) (domain.Quote, error) {
	if len(d.Items) == 0 {
		return domain.Quote{}, ErrEmptyQuote
	}
	validity := strings.TrimSpace(d.Validity)
	if validity == "" {
		validity = DefaultValidity
	}
	q := domain.Quote{
		ID:            d.ID,
		Customer:      strings.TrimSpace(d.Customer),
		CustomerEmail: strings.TrimSpace(d.CustomerEmail),
		CustomerPhone: strings.TrimSpace(d.CustomerPhone),
		Items:         cloneLines(d.Items),
		TotalPrice:    pricing.SumLines(d.Items),
		Validity:      validity,
	}

	quotes := s.Quotes.All()
	idx := -1
	if q.ID != "" {
		for i := range quotes {
			if quotes[i].ID == q.ID {
				idx = i
				break
			}
		}
	}
	switch {
	case idx >= 0:
		q.CreatedAt = quotes[idx].CreatedAt
		quotes[idx] = q
	default:
		if q.ID == "" {
			q.ID = s.IDs.NextString()
		}
		q.CreatedAt = Timestamp(s.IDs.Now())
		quotes = append(quotes, q)
	}
	if !s.Quotes.Replace(quotes) {
		return domain.Quote{}, ErrPersist
	}
	applog.Audit(nil, "quote.save", map[string]any{"quote_id": q.ID, "items": len(q.Items), "edited": idx >= 0})
	return q, nil
}

// Delete removes the quote. confirmed must be true.
func (s *QuoteService) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	quotes := s.Quotes.All()
	kept := quotes[:0]
	for _, q := range quotes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if !s.Quotes.Replace(kept) {
		return ErrPersist
	}
	applog.Audit(nil, "quote.delete", map[string]any{"quote_id": id})
	return nil
}

// Get returns a saved quote, e.g. for printing.
func (s *QuoteService) Get(id string) (domain.Quote, error) {
	q, ok := s.Quotes.Get(id)
	if !ok {
		return domain.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}
