package repositories

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// AccountReader defines read operations for the chart-of-accounts reference table.
type AccountReader interface {
	// FindAccountByCode retrieves one ledger account by its PCG code.
	FindAccountByCode(ctx context.Context, accountCode string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves the full chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error)
}

// AccountWriter defines write operations for the chart-of-accounts reference table.
type AccountWriter interface {
	// UpsertAccounts seeds or refreshes the reference table from the taxonomy.
	// Existing codes are updated in place; the operation is idempotent.
	UpsertAccounts(ctx context.Context, accounts []domain.LedgerAccount) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
