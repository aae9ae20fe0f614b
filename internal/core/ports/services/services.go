package services

import (
	"context"

	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AuthenticatorSvc verifies account number + PIN pairs and maintains the
// durable lockout counter.
type AuthenticatorSvc interface {
	// Authenticate checks the PIN for the account. On success it resets the
	// failed-attempts counter and returns the redacted account view. Failure
	// kinds: ErrAccountNotFound, ErrAccountLocked, ErrAccountLockedNow and
	// InvalidPINError (which carries the remaining attempts).
	Authenticate(ctx context.Context, accountNumber, pin string) (*dto.AccountResponse, error)

	// ViewAccount returns the redacted view of an account without touching
	// the authentication state.
	ViewAccount(ctx context.Context, accountNumber string) (*dto.AccountResponse, error)
}

// TellerSvc moves money. Each operation updates the account and appends a
// ledger entry atomically.
type TellerSvc interface {
	Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error)
	Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error)
}

// HistorySvc is the read-only projection over an account's ledger.
type HistorySvc interface {
	// History returns all entries newest first.
	History(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error)
	// Recent returns the newest ten entries.
	Recent(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error)
}

// ServiceContainer bundles the core services for route registration.
type ServiceContainer struct {
	Authenticator AuthenticatorSvc
	Teller        TellerSvc
	History       HistorySvc
}
