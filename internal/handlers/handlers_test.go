package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/branchsim/atm_backend/internal/core/domain"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/branchsim/atm_backend/internal/handlers"
	"github.com/branchsim/atm_backend/internal/utils"
	"github.com/branchsim/atm_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockAuthenticatorSvc struct {
	mock.Mock
}

func (m *MockAuthenticatorSvc) Authenticate(ctx context.Context, accountNumber, pin string) (*dto.AccountResponse, error) {
	args := m.Called(ctx, accountNumber, pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

func (m *MockAuthenticatorSvc) ViewAccount(ctx context.Context, accountNumber string) (*dto.AccountResponse, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountResponse), args.Error(1)
}

type MockTellerSvc struct {
	mock.Mock
}

func (m *MockTellerSvc) Withdraw(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

func (m *MockTellerSvc) Deposit(ctx context.Context, accountNumber string, amount decimal.Decimal) (*dto.TransactionResponse, error) {
	args := m.Called(ctx, accountNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionResponse), args.Error(1)
}

type MockHistorySvc struct {
	mock.Mock
}

func (m *MockHistorySvc) History(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TransactionResponse), args.Error(1)
}

func (m *MockHistorySvc) Recent(ctx context.Context, accountNumber string) ([]dto.TransactionResponse, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.TransactionResponse), args.Error(1)
}

// --- Suite ---

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	authenticator *MockAuthenticatorSvc
	teller        *MockTellerSvc
	history       *MockHistorySvc
}

func (suite *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		pattern := regexp.MustCompile(`^[0-9]+$`)
		_ = v.RegisterValidation("acctnum", func(fl validator.FieldLevel) bool {
			return pattern.MatchString(fl.Field().String())
		})
	}
}

func (suite *HandlersTestSuite) SetupTest() {
	suite.cfg = &config.Config{
		Port:              "8080",
		IsProduction:      true,
		JWTSecret:         "test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "test",
		LoginRateLimit:    "100-S",
	}
	suite.authenticator = new(MockAuthenticatorSvc)
	suite.teller = new(MockTellerSvc)
	suite.history = new(MockHistorySvc)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Authenticator: suite.authenticator,
		Teller:        suite.teller,
		History:       suite.history,
	})
}

func (suite *HandlersTestSuite) sessionToken(accountNumber string) string {
	token, _, err := utils.GenerateSessionToken(accountNumber, suite.cfg.JWTSecret, suite.cfg.JWTExpiryDuration, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	return token
}

func (suite *HandlersTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func accountView() *dto.AccountResponse {
	return &dto.AccountResponse{
		ID:                1,
		AccountNumber:     "1001",
		AccountHolderName: "John Doe",
		Balance:           decimal.NewFromInt(50000),
		Status:            domain.StatusActive,
		CreatedDate:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- Login ---

func (suite *HandlersTestSuite) TestLogin_Success() {
	suite.authenticator.On("Authenticate", mock.Anything, "1001", "1234").Return(accountView(), nil).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "1001", PIN: "1234"})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Token)
	suite.Equal("1001", resp.Account.AccountNumber)
	suite.True(resp.Account.Balance.Equal(decimal.NewFromInt(50000)))
	suite.True(resp.ExpiresAt.After(time.Now()))
}

func (suite *HandlersTestSuite) TestLogin_WrongPIN() {
	suite.authenticator.On("Authenticate", mock.Anything, "1001", "0000").
		Return(nil, &apperrors.InvalidPINError{RemainingAttempts: 2}).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "1001", PIN: "0000"})

	suite.Equal(http.StatusUnauthorized, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.RemainingAttempts)
	suite.Equal(2, *resp.RemainingAttempts)
}

func (suite *HandlersTestSuite) TestLogin_AccountNotFound() {
	suite.authenticator.On("Authenticate", mock.Anything, "9999", "1234").
		Return(nil, apperrors.ErrAccountNotFound).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "9999", PIN: "1234"})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_LockedAccount() {
	suite.authenticator.On("Authenticate", mock.Anything, "1002", "5678").
		Return(nil, apperrors.ErrAccountLocked).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "1002", PIN: "5678"})

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_ThirdFailureLocks() {
	suite.authenticator.On("Authenticate", mock.Anything, "1002", "0000").
		Return(nil, apperrors.ErrAccountLockedNow).Once()

	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "1002", PIN: "0000"})

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_NonNumericAccountRejected() {
	w := suite.do(http.MethodPost, "/auth/login", "", dto.LoginRequest{AccountNumber: "abc1", PIN: "1234"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.authenticator.AssertNotCalled(suite.T(), "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestLogin_MissingBody() {
	w := suite.do(http.MethodPost, "/auth/login", "", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// --- Session middleware ---

func (suite *HandlersTestSuite) TestATMRoutes_RequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/atm/account", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/atm/account", "not-a-token", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestATMRoutes_RejectTokenWithWrongSecret() {
	token, _, err := utils.GenerateSessionToken("1001", "other-secret", time.Hour, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/v1/atm/account", token, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestATMRoutes_RejectExpiredToken() {
	token, _, err := utils.GenerateSessionToken("1001", suite.cfg.JWTSecret, -time.Minute, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/v1/atm/account", token, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Account view ---

func (suite *HandlersTestSuite) TestViewAccount() {
	suite.authenticator.On("ViewAccount", mock.Anything, "1001").Return(accountView(), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/atm/account", suite.sessionToken("1001"), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("John Doe", resp.AccountHolderName)
	// Redacted view: the PIN never appears in the payload.
	suite.NotContains(w.Body.String(), "1234")
}

// --- Teller operations ---

func (suite *HandlersTestSuite) TestWithdraw_Success() {
	suite.teller.On("Withdraw", mock.Anything, "1001", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(200))
	})).Return(&dto.TransactionResponse{
		ID:                      1,
		TransactionType:         domain.Withdrawal,
		Amount:                  decimal.NewFromInt(200),
		BalanceAfterTransaction: decimal.NewFromInt(49800),
		Description:             "Cash withdrawal",
		Status:                  domain.TxnSuccess,
		TransactionDate:         time.Now().UTC(),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/atm/withdraw", suite.sessionToken("1001"), gin.H{"amount": 200})

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Withdrawal, resp.TransactionType)
	suite.True(resp.BalanceAfterTransaction.Equal(decimal.NewFromInt(49800)))
	suite.teller.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestWithdraw_InsufficientBalance() {
	suite.teller.On("Withdraw", mock.Anything, "1001", mock.Anything).Return(nil, &apperrors.InsufficientBalanceError{
		CurrentBalance: decimal.NewFromInt(49800),
		Requested:      decimal.NewFromInt(60000),
	}).Once()

	w := suite.do(http.MethodPost, "/api/v1/atm/withdraw", suite.sessionToken("1001"), gin.H{"amount": 60000})

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var resp map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("49800", resp["currentBalance"])
	suite.Equal("60000", resp["requested"])
}

func (suite *HandlersTestSuite) TestWithdraw_InvalidAmount() {
	suite.teller.On("Withdraw", mock.Anything, "1001", mock.Anything).
		Return(nil, &apperrors.InvalidAmountError{Reason: "amount must be in multiples of 100"}).Once()

	w := suite.do(http.MethodPost, "/api/v1/atm/withdraw", suite.sessionToken("1001"), gin.H{"amount": 150})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestWithdraw_LockedAccount() {
	suite.teller.On("Withdraw", mock.Anything, "1001", mock.Anything).
		Return(nil, apperrors.ErrAccountLocked).Once()

	w := suite.do(http.MethodPost, "/api/v1/atm/withdraw", suite.sessionToken("1001"), gin.H{"amount": 200})

	suite.Equal(http.StatusLocked, w.Code)
}

func (suite *HandlersTestSuite) TestDeposit_Success() {
	suite.teller.On("Deposit", mock.Anything, "1001", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(500))
	})).Return(&dto.TransactionResponse{
		ID:                      2,
		TransactionType:         domain.Deposit,
		Amount:                  decimal.NewFromInt(500),
		BalanceAfterTransaction: decimal.NewFromInt(50500),
		Description:             "Cash deposit",
		Status:                  domain.TxnSuccess,
		TransactionDate:         time.Now().UTC(),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/atm/deposit", suite.sessionToken("1001"), gin.H{"amount": 500})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlersTestSuite) TestDeposit_MalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/atm/deposit", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.sessionToken("1001"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.teller.AssertNotCalled(suite.T(), "Deposit", mock.Anything, mock.Anything, mock.Anything)
}

// --- History ---

func (suite *HandlersTestSuite) TestListTransactions() {
	suite.history.On("History", mock.Anything, "1001").Return([]dto.TransactionResponse{
		{ID: 2, TransactionType: domain.Deposit, Amount: decimal.NewFromInt(500)},
		{ID: 1, TransactionType: domain.Withdrawal, Amount: decimal.NewFromInt(200)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/atm/transactions", suite.sessionToken("1001"), nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
	suite.Equal(int64(2), resp[0].ID)
}

func (suite *HandlersTestSuite) TestListTransactions_Empty() {
	suite.history.On("History", mock.Anything, "1001").Return([]dto.TransactionResponse{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/atm/transactions", suite.sessionToken("1001"), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq("[]", w.Body.String())
}

func (suite *HandlersTestSuite) TestListRecentTransactions() {
	suite.history.On("Recent", mock.Anything, "1001").Return([]dto.TransactionResponse{
		{ID: 3, TransactionType: domain.Deposit, Amount: decimal.NewFromInt(100)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/atm/transactions/recent", suite.sessionToken("1001"), nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.history.AssertExpectations(suite.T())
}

// --- Health ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)

	suite.Equal(http.StatusOK, w.Code)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
