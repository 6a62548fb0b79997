package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// accountService exposes the chart-of-accounts reference table backed by the
// taxonomy and mirrored into the store at startup.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	tax         *taxonomy.Taxonomy
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, tax *taxonomy.Taxonomy) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, tax: tax}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// SeedChartOfAccounts upserts every taxonomy account into the reference
// table. Idempotent; called once at process start.
func (s *accountService) SeedChartOfAccounts(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts := s.tax.Accounts()
	if err := s.accountRepo.UpsertAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	logger.Info("Chart of accounts seeded", slog.Int("account_count", len(accounts)))
	return nil
}

// GetAccountByCode retrieves one account by its PCG code.
func (s *accountService) GetAccountByCode(ctx context.Context, accountCode string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}
	return account, nil
}

// ListAccounts retrieves the full chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
