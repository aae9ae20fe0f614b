package dto

import (
	"time"

	"github.com/branchsim/atm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LoginRequest carries the credentials for PIN authentication.
type LoginRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,acctnum"`
	PIN           string `json:"pin" binding:"required"`
}

// LoginResponse returns the session token and the authenticated account view.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	Account   AccountResponse `json:"account"`
}

// AccountResponse is the redacted account view returned to callers. It
// deliberately omits the PIN and the failed-attempts counter.
type AccountResponse struct {
	ID                  int64                `json:"id"`
	AccountNumber       string               `json:"accountNumber"`
	AccountHolderName   string               `json:"accountHolderName"`
	Balance             decimal.Decimal      `json:"balance"`
	Status              domain.AccountStatus `json:"status"`
	Email               *string              `json:"email,omitempty"`
	PhoneNumber         *string              `json:"phoneNumber,omitempty"`
	CreatedDate         time.Time            `json:"createdDate"`
	LastTransactionDate *time.Time           `json:"lastTransactionDate,omitempty"`
}

// ToAccountResponse converts a domain.Account to its redacted view.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:                  acc.ID,
		AccountNumber:       acc.AccountNumber,
		AccountHolderName:   acc.AccountHolderName,
		Balance:             acc.Balance,
		Status:              acc.Status,
		Email:               acc.Email,
		PhoneNumber:         acc.PhoneNumber,
		CreatedDate:         acc.CreatedDate,
		LastTransactionDate: acc.LastTransactionDate,
	}
}
