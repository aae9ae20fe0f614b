package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus describes whether an account may authenticate and transact.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusLocked   AccountStatus = "LOCKED"
	StatusInactive AccountStatus = "INACTIVE"
)

// MaxFailedLoginAttempts is the number of consecutive bad PIN entries after
// which an account transitions to LOCKED. The counter is persisted per failed
// attempt so the lockout survives restarts.
const MaxFailedLoginAttempts = 3

// Account represents a customer's account at the branch.
// This is the durable record; it carries the PIN and the failed-attempts
// counter and must never be returned to callers directly (see dto.AccountResponse).
type Account struct {
	ID                  int64           `json:"id"`
	AccountNumber       string          `json:"accountNumber"`
	PIN                 string          `json:"-"`
	AccountHolderName   string          `json:"accountHolderName"`
	Balance             decimal.Decimal `json:"balance"`
	Status              AccountStatus   `json:"status"`
	Email               *string         `json:"email"`       // Nullable, unique when present
	PhoneNumber         *string         `json:"phoneNumber"` // Nullable
	CreatedDate         time.Time       `json:"createdDate"`
	LastTransactionDate *time.Time      `json:"lastTransactionDate"` // Nil until the first teller operation
	FailedLoginAttempts int             `json:"failedLoginAttempts"`
}

// CanTransact reports whether teller operations are allowed on the account.
// LOCKED and INACTIVE accounts both refuse money movement.
func (a *Account) CanTransact() bool {
	return a.Status == StatusActive
}
