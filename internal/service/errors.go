package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// statuses with errors.Is; nothing in this package swallows an error and
// returns an empty result instead.
var (
	// ErrTenantNotFound means the caller identity does not resolve to a tenant.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNotFound means the record does not exist under the caller's tenant.
	// A record owned by another tenant is indistinguishable from an absent one.
	ErrNotFound = errors.New("record not found")

	// ErrValidation means the input failed a shape or range check.
	ErrValidation = errors.New("validation failed")
)

// InsufficientStockError reports a withdrawal that exceeds the available
// quantity. It carries enough detail for the caller to tell the operator
// which product failed and why.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Unit        string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d %s",
		e.ProductName, e.Requested, e.Available, e.Unit)
}
