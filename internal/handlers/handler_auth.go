package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/branchsim/atm_backend/internal/apperrors"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/branchsim/atm_backend/internal/middleware"
	"github.com/branchsim/atm_backend/internal/utils"
	"github.com/branchsim/atm_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// ErrorResponse is the generic error body for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
	// RemainingAttempts is set only on PIN mismatches.
	RemainingAttempts *int `json:"remainingAttempts,omitempty"`
}

// authHandler handles login requests.
type authHandler struct {
	authenticator portssvc.AuthenticatorSvc
	cfg           *config.Config
}

func newAuthHandler(authenticator portssvc.AuthenticatorSvc, cfg *config.Config) *authHandler {
	return &authHandler{authenticator: authenticator, cfg: cfg}
}

// registerAuthRoutes sets up the public login route with its rate limit.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authenticator portssvc.AuthenticatorSvc) {
	h := newAuthHandler(authenticator, cfg)

	rate, err := limiter.NewRateFromFormatted(cfg.LoginRateLimit)
	if err != nil {
		rate, _ = limiter.NewRateFromFormatted("10-M")
	}
	ipLimiter := limiter.New(memory.NewStore(), rate)

	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimit(ipLimiter), h.login)
	}
}

// login godoc
// @Summary Customer login
// @Description Authenticates an account number + PIN pair and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse "PIN mismatch; carries remainingAttempts"
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 423 {object} handlers.ErrorResponse "Account locked"
// @Failure 500 {object} handlers.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind login request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	account, err := h.authenticator.Authenticate(c.Request.Context(), req.AccountNumber, req.PIN)
	if err != nil {
		var pinErr *apperrors.InvalidPINError
		switch {
		case errors.As(err, &pinErr):
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:             pinErr.Error(),
				RemainingAttempts: &pinErr.RemainingAttempts,
			})
		case errors.Is(err, apperrors.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Account not found"})
		case errors.Is(err, apperrors.ErrAccountLocked), errors.Is(err, apperrors.ErrAccountLockedNow):
			c.JSON(http.StatusLocked, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Authentication failed in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong"})
		}
		return
	}

	token, expiresAt, err := utils.GenerateSessionToken(account.AccountNumber, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   *account,
	})
}
