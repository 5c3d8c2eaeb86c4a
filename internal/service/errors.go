package service

import "errors"

// Sentinel errors handlers map to HTTP statuses. Upstream failures become 502,
// workflow precondition failures become 409.
var (
	ErrUpstream      = errors.New("quote engine request failed")
	ErrEmptyUpstream = errors.New("quote engine returned no data")

	ErrNotExtracted   = errors.New("document has not been extracted")
	ErrEmptyCatalog   = errors.New("document extraction contains no items")
	ErrNoPriceData    = errors.New("item prices have not been fetched for this document")
	ErrNoDiscountData = errors.New("discount information has not been fetched for this document")

	ErrInvalidRole = errors.New("role cannot submit discounts")
)
