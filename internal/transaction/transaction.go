package transaction

import (
	"errors"
	"time"
)

// ErrNotFound covers both a missing transaction and one reachable only
// through another user's account.
var ErrNotFound = errors.New("transaction not found")

// Transaction is a single ledger entry. It has no owner column of its own:
// ownership is derived through the referenced account, so every scoped query
// joins accounts.
type Transaction struct {
	ID           string
	Amount       int64 // milliunits, negative = expense
	Payee        string
	Notes        *string
	Date         time.Time
	AccountID    string
	AccountName  string // loaded via JOIN on list/get
	CategoryID   *string
	CategoryName *string // loaded via JOIN, nil when uncategorized
}
