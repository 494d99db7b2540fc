package account

import "errors"

// ErrNotFound covers both a missing account and an account owned by someone
// else; callers cannot tell the two apart.
var ErrNotFound = errors.New("account not found")

// Account is a container for transactions, owned by exactly one user.
type Account struct {
	ID      string
	PlaidID *string
	Name    string
	UserID  string
}
