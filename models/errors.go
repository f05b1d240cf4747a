package models

import (
	"errors"
	"fmt"
	"strings"
)

// Shared error taxonomy for the cart and order workflows. Handlers translate
// these into HTTP status codes; the structured fields let the caller see
// which item or field to fix instead of a flat message.

var ErrEmptyCart = errors.New("cart is empty")

// NotFoundError covers both a genuinely missing record and a record that
// exists but is not owned by the caller. The two cases are deliberately
// indistinguishable to the caller.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// InvalidStateError reports an order that exists and is owned by the caller
// but is past the pending state. Re-confirming a confirmed order lands here,
// which is what makes confirmation idempotent-rejecting.
type InvalidStateError struct {
	OrderID uint
	Status  OrderStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order %d is %s, not pending", e.OrderID, e.Status)
}

type IncompleteAddressError struct {
	Missing []string
}

func (e *IncompleteAddressError) Error() string {
	return "contact address is missing fields: " + strings.Join(e.Missing, ", ")
}

// VendorClosedError rejects cart additions against a vendor that has turned
// off order intake.
type VendorClosedError struct {
	VendorID uint
}

func (e *VendorClosedError) Error() string {
	return fmt.Sprintf("vendor %d is not accepting orders", e.VendorID)
}

// StockShortage is one violating line item: how much was requested against
// how much the vendor actually has.
type StockShortage struct {
	ProductID uint `json:"product_id"`
	VendorID  uint `json:"vendor_id"`
	Requested int  `json:"requested"`
	Available int  `json:"available"`
}

// InsufficientStockError carries every violating item in the order, not just
// the first one found.
type InsufficientStockError struct {
	Items []StockShortage
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d item(s)", len(e.Items))
}

// ConflictError means a concurrent confirmation won the race for the same
// stock row after the precondition check passed. The whole transaction was
// rolled back; the caller should retry.
type ConflictError struct {
	ProductID uint
	VendorID  uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stock for product %d at vendor %d changed concurrently, retry", e.ProductID, e.VendorID)
}
