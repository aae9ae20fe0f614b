package apperrors

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the failure kinds surfaced by the core. Handlers map
// these to HTTP statuses with errors.Is; the payload-carrying kinds below
// unwrap to their sentinel.
var (
	// ErrAccountNotFound indicates no account exists with the given number.
	ErrAccountNotFound = fmt.Errorf("account not found")

	// ErrInvalidPIN indicates a PIN mismatch on an unlocked account.
	ErrInvalidPIN = fmt.Errorf("invalid PIN")

	// ErrAccountLocked indicates the account was already locked before this request.
	ErrAccountLocked = fmt.Errorf("account is locked due to multiple failed login attempts")

	// ErrAccountLockedNow indicates this attempt exhausted the remaining
	// attempts and triggered the lock.
	ErrAccountLockedNow = fmt.Errorf("account is now locked due to multiple failed login attempts")

	// ErrInvalidAmount indicates an amount that is non-positive or not a
	// multiple of 100.
	ErrInvalidAmount = fmt.Errorf("invalid amount")

	// ErrInsufficientBalance indicates a withdrawal that would drive the
	// balance negative.
	ErrInsufficientBalance = fmt.Errorf("insufficient balance")

	// ErrDuplicate indicates a unique-constraint violation (account number or email).
	ErrDuplicate = fmt.Errorf("resource already exists")

	// ErrStoreFailure covers any storage-level failure: connection loss,
	// constraint errors other than duplicates, commit failures.
	ErrStoreFailure = fmt.Errorf("store failure")
)

// InvalidPINError carries the number of attempts left before lockout.
type InvalidPINError struct {
	RemainingAttempts int
}

func (e *InvalidPINError) Error() string {
	return fmt.Sprintf("invalid PIN, attempts remaining: %d", e.RemainingAttempts)
}

func (e *InvalidPINError) Unwrap() error { return ErrInvalidPIN }

// InvalidAmountError carries the rule the amount broke.
type InvalidAmountError struct {
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Reason)
}

func (e *InvalidAmountError) Unwrap() error { return ErrInvalidAmount }

// InsufficientBalanceError carries the balance observed under the row lock
// and the requested amount.
type InsufficientBalanceError struct {
	CurrentBalance decimal.Decimal
	Requested      decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current balance: %s, requested: %s",
		e.CurrentBalance.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
