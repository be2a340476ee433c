package services

import "errors"

var (
	// validation failures shown to the user
	ErrNoProduct         = errors.New("select a product and a quantity of at least 1")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("add at least one item to the sale")
	ErrEmptyQuote        = errors.New("add at least one item to the quote")
	ErrNotConfirmed      = errors.New("deletion must be confirmed")
	ErrInvalidProduct    = errors.New("invalid product data")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrBadCreds          = errors.New("invalid email or password")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidSignup     = errors.New("name, valid email and a 6-72 character password are required")

	// the document write failed; the change was not saved
	ErrPersist = errors.New("could not save data")
)
