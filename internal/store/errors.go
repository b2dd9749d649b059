package store

import "errors"

var (
	// ErrEmptySale is returned when a sale has no lines.
	ErrEmptySale = errors.New("sale has no items")

	// ErrInvalidQuantity is returned for a sale line with quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrProductNotFound is returned when a sale line names an unknown product.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when a sale asks for more units than
	// are in stock.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrSelfDelete is returned when the logged-in user tries to delete
	// their own account.
	ErrSelfDelete = errors.New("cannot delete the logged-in user")

	// ErrLastUser is returned when deleting would leave no accounts.
	ErrLastUser = errors.New("cannot delete the last user")
)
