package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/branchsim/atm_backend/internal/apperrors"
	"github.com/branchsim/atm_backend/internal/core/domain"
	portsrepo "github.com/branchsim/atm_backend/internal/core/ports/repositories"
	portssvc "github.com/branchsim/atm_backend/internal/core/ports/services"
	"github.com/branchsim/atm_backend/internal/dto"
	"github.com/jackc/pgx/v5"
)

// authService implements the AuthenticatorSvc interface.
type authService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	transactor  portsrepo.Transactor
}

// NewAuthenticatorService creates the PIN authenticator.
func NewAuthenticatorService(accountRepo portsrepo.AccountRepository, transactor portsrepo.Transactor) portssvc.AuthenticatorSvc {
	return &authService{
		accountRepo: accountRepo,
		transactor:  transactor,
	}
}

var _ portssvc.AuthenticatorSvc = (*authService)(nil)

// Authenticate verifies an account number + PIN pair. Failed attempts are
// counted durably inside the same transaction, so a mismatch still commits:
// the auth failure is carried out of the transaction in authErr rather than
// returned from the transactional closure (which would roll the counter back).
func (s *authService) Authenticate(ctx context.Context, accountNumber, pin string) (*dto.AccountResponse, error) {
	var (
		view    *dto.AccountResponse
		authErr error
	)

	err := s.transactor.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.accountRepo.FindAccountByNumberForUpdate(ctx, tx, accountNumber)
		if err != nil {
			return err
		}

		// The lock check precedes the PIN check so a locked account never
		// reveals whether the supplied PIN was correct.
		if account.Status == domain.StatusLocked {
			authErr = apperrors.ErrAccountLocked
			return nil
		}

		if subtle.ConstantTimeCompare([]byte(account.PIN), []byte(pin)) != 1 {
			account.FailedLoginAttempts++
			if account.FailedLoginAttempts >= domain.MaxFailedLoginAttempts {
				account.Status = domain.StatusLocked
				authErr = apperrors.ErrAccountLockedNow
			} else {
				authErr = &apperrors.InvalidPINError{
					RemainingAttempts: domain.MaxFailedLoginAttempts - account.FailedLoginAttempts,
				}
			}
			return s.accountRepo.UpdateAccount(ctx, tx, *account)
		}

		account.FailedLoginAttempts = 0
		if err := s.accountRepo.UpdateAccount(ctx, tx, *account); err != nil {
			return err
		}

		v := dto.ToAccountResponse(account)
		view = &v
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Authentication aborted", slog.String("account_number", accountNumber))
		return nil, err
	}
	if authErr != nil {
		s.LogWarn(ctx, "Authentication failed",
			slog.String("account_number", accountNumber),
			slog.String("reason", authErr.Error()))
		return nil, authErr
	}

	s.LogInfo(ctx, "Authentication succeeded", slog.String("account_number", accountNumber))
	return view, nil
}

// ViewAccount returns the redacted view of an account without touching the
// authentication state.
func (s *authService) ViewAccount(ctx context.Context, accountNumber string) (*dto.AccountResponse, error) {
	account, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	view := dto.ToAccountResponse(account)
	return &view, nil
}
