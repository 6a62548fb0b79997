package services

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// AccountSvcFacade exposes the chart-of-accounts reference table.
type AccountSvcFacade interface {
	// SeedChartOfAccounts upserts the taxonomy's accounts into the store.
	// Called once at startup; idempotent.
	SeedChartOfAccounts(ctx context.Context) error

	// GetAccountByCode retrieves one account by its PCG code.
	GetAccountByCode(ctx context.Context, accountCode string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves the full chart of accounts.
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
}
