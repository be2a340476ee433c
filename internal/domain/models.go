package domain

// Product is one catalog entry. SellPrice is stored, not recomputed on read.
type Product struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	BuyPrice    float64 `json:"buyPrice"`
	Margin      float64 `json:"margin"` // percent
	SellPrice   float64 `json:"sellPrice"`
}

// LineItem is a denormalized snapshot of a product at the time it was added
// to a cart or quote.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type Sale struct {
	ID            int64      `json:"id"`
	Items         []LineItem `json:"items"`
	TotalPrice    float64    `json:"totalPrice"`
	PaymentMethod string     `json:"paymentMethod"`
	CreatedAt     string     `json:"createdAt"`
}

type Quote struct {
	ID            string     `json:"id"`
	Customer      string     `json:"customer"`
	CustomerEmail string     `json:"customerEmail"`
	CustomerPhone string     `json:"customerPhone"`
	Items         []LineItem `json:"items"`
	TotalPrice    float64    `json:"totalPrice"`
	Validity      string     `json:"validity"` // days
	CreatedAt     string     `json:"createdAt"`
}

// QuoteDraft is an unsaved quote being edited. ID is empty until the first
// save; a draft loaded from a saved quote keeps that quote's ID.
type QuoteDraft struct {
	ID            string
	Customer      string
	CustomerEmail string
	CustomerPhone string
	Validity      string
	Items         []LineItem
}

// Availability is the stock badge shown next to a product.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}
