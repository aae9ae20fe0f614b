package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/branchsim/atm_backend/internal/apperrors"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/branchsim/atm_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// atmHandler handles the session-authenticated ATM operations.
type atmHandler struct {
	authenticator portssvc.AuthenticatorSvc
	teller        portssvc.TellerSvc
	history       portssvc.HistorySvc
}

func newATMHandler(services *portssvc.ServiceContainer) *atmHandler {
	return &atmHandler{
		authenticator: services.Authenticator,
		teller:        services.Teller,
		history:       services.History,
	}
}

// registerATMRoutes sets up the ATM operation routes. The group is expected
// to carry the session middleware; the account number comes from the session
// token, never from the request body.
func registerATMRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newATMHandler(services)

	atm := rg.Group("/atm")
	{
		atm.GET("/account", h.viewAccount)
		atm.POST("/withdraw", h.withdraw)
		atm.POST("/deposit", h.deposit)
		atm.GET("/transactions", h.listTransactions)
		atm.GET("/transactions/recent", h.listRecentTransactions)
	}
}

// sessionAccountNumber pulls the authenticated account number or aborts.
func sessionAccountNumber(c *gin.Context) (string, bool) {
	number, ok := middleware.GetAccountNumberFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Account number not found in session context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return number, ok
}

// viewAccount godoc
// @Summary View account
// @Description Returns the redacted view of the session account.
// @Tags atm
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /atm/account [get]
func (h *atmHandler) viewAccount(c *gin.Context) {
	number, ok := sessionAccountNumber(c)
	if !ok {
		return
	}

	account, err := h.authenticator.ViewAccount(c.Request.Context(), number)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// withdraw godoc
// @Summary Withdraw cash
// @Description Debits the session account and appends a ledger entry.
// @Tags atm
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal amount"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount"
// @Failure 422 {object} handlers.ErrorResponse "Insufficient balance"
// @Failure 423 {object} handlers.ErrorResponse "Account not transactable"
// @Security BearerAuth
// @Router /atm/withdraw [post]
func (h *atmHandler) withdraw(c *gin.Context) {
	number, ok := sessionAccountNumber(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	h.postEntry(c, req.Amount, number, h.teller.Withdraw)
}

// deposit godoc
// @Summary Deposit cash
// @Description Credits the session account and appends a ledger entry.
// @Tags atm
// @Accept json
// @Produce json
// @Param deposit body dto.DepositRequest true "Deposit amount"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid amount"
// @Failure 423 {object} handlers.ErrorResponse "Account not transactable"
// @Security BearerAuth
// @Router /atm/deposit [post]
func (h *atmHandler) deposit(c *gin.Context) {
	number, ok := sessionAccountNumber(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	h.postEntry(c, req.Amount, number, h.teller.Deposit)
}

// postEntry runs a teller operation and renders its result.
func (h *atmHandler) postEntry(c *gin.Context, amount decimal.Decimal, number string, op func(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error)) {
	txn, err := op(c.Request.Context(), number, amount)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// listTransactions godoc
// @Summary Transaction history
// @Description Returns the session account's ledger entries, newest first.
// @Tags atm
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /atm/transactions [get]
func (h *atmHandler) listTransactions(c *gin.Context) {
	number, ok := sessionAccountNumber(c)
	if !ok {
		return
	}

	txns, err := h.history.History(c.Request.Context(), number)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// listRecentTransactions godoc
// @Summary Recent transactions
// @Description Returns the newest ten ledger entries of the session account.
// @Tags atm
// @Produce json
// @Success 200 {array} dto.TransactionResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Security BearerAuth
// @Router /atm/transactions/recent [get]
func (h *atmHandler) listRecentTransactions(c *gin.Context) {
	number, ok := sessionAccountNumber(c)
	if !ok {
		return
	}

	txns, err := h.history.Recent(c.Request.Context(), number)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// renderError maps core failure kinds onto HTTP statuses.
func (h *atmHandler) renderError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var balErr *apperrors.InsufficientBalanceError
	switch {
	case errors.Is(err, apperrors.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &balErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          balErr.Error(),
			"currentBalance": balErr.CurrentBalance,
			"requested":      balErr.Requested,
		})
	case errors.Is(err, apperrors.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
	case errors.Is(err, apperrors.ErrAccountLocked), errors.Is(err, apperrors.ErrAccountLockedNow):
		c.JSON(http.StatusLocked, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("ATM operation failed in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong"})
	}
}
