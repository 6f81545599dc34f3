package domain

import (
	"errors"
	"fmt"
)

// Shop failure taxonomy. Business-rule failures map to client errors at the
// HTTP layer; ErrStoreUnavailable is the only server-side kind and never
// leaks the underlying storage error to the client.
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrPaymentRace       = errors.New("payment lost a concurrent balance update")
	ErrNotOwned          = errors.New("item not owned")
	ErrNotEquippable     = errors.New("item cannot be equipped")
	ErrUserNotFound      = errors.New("user not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// InsufficientFundsError carries the current balance and required cost so
// the caller can render a helpful message. It matches ErrInsufficientFunds
// under errors.Is.
type InsufficientFundsError struct {
	Balance int
	Cost    int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: have %d coins, item costs %d", e.Balance, e.Cost)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }
