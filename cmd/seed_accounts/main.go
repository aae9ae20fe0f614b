// Command seed_accounts wipes the accounts table and loads the demo branch
// accounts. It is a one-shot command and is never run by the server.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/branchsim/atm_backend/internal/core/domain"
	"github.com/branchsim/atm_backend/internal/repositories/database/pgsql"
	"github.com/branchsim/atm_backend/pkg/config"
	"github.com/branchsim/atm_backend/pkg/database"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryContainer(dbPool)

	seedAccounts := []domain.Account{
		{
			AccountNumber:     "1001",
			PIN:               "1234",
			AccountHolderName: "John Doe",
			Balance:           decimal.NewFromInt(50000),
			Status:            domain.StatusActive,
			Email:             strPtr("john.doe@example.com"),
			PhoneNumber:       strPtr("9876543210"),
		},
		{
			AccountNumber:     "1002",
			PIN:               "5678",
			AccountHolderName: "Jane Smith",
			Balance:           decimal.NewFromInt(75000),
			Status:            domain.StatusActive,
			Email:             strPtr("jane.smith@example.com"),
			PhoneNumber:       strPtr("9876543211"),
		},
		{
			AccountNumber:     "1003",
			PIN:               "9012",
			AccountHolderName: "Robert Johnson",
			Balance:           decimal.NewFromInt(100000),
			Status:            domain.StatusActive,
			Email:             strPtr("robert.johnson@example.com"),
			PhoneNumber:       strPtr("9876543212"),
		},
	}

	if err := repos.Account.DeleteAllAccounts(ctx); err != nil {
		logger.Error("Failed to clear existing accounts", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for i := range seedAccounts {
		if err := repos.Account.SaveAccount(ctx, &seedAccounts[i]); err != nil {
			logger.Error("Failed to save seed account",
				slog.String("account_number", seedAccounts[i].AccountNumber),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Sample accounts initialized successfully")
	logger.Info("Test credentials", slog.String("account", "1001"), slog.String("pin", "1234"))
	logger.Info("Test credentials", slog.String("account", "1002"), slog.String("pin", "5678"))
	logger.Info("Test credentials", slog.String("account", "1003"), slog.String("pin", "9012"))
}
