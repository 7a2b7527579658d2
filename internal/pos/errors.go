package pos

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderAlreadyVoid = errors.New("order already voided")
)

// InsufficientStockError carries what the cashier needs to show: which
// product ran out and how many are left.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", e.Product, e.Available, e.Requested)
}
