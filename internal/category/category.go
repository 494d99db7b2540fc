package category

import "errors"

var ErrNotFound = errors.New("category not found")

// Category labels transactions. Deleting one detaches its transactions
// instead of removing them.
type Category struct {
	ID      string
	PlaidID *string
	Name    string
	UserID  string
}
