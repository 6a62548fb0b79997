package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewPgxAccountRepository creates a new repository for the chart-of-accounts
// reference table.
func NewPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

// UpsertAccounts seeds or refreshes the reference table from the taxonomy.
func (r *PgxAccountRepository) UpsertAccounts(ctx context.Context, accounts []domain.LedgerAccount) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO ledger_accounts (account_code, label, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_code) DO UPDATE SET label = EXCLUDED.label, category = EXCLUDED.category;
	`
	for _, acc := range accounts {
		batch.Queue(query, acc.AccountCode, acc.Label, acc.Category)
	}

	br := r.pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to upsert ledger accounts: %w", err)
	}
	return nil
}

// FindAccountByCode retrieves one ledger account by its PCG code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.LedgerAccount, error) {
	query := `SELECT account_code, label, category FROM ledger_accounts WHERE account_code = $1;`
	var acc domain.LedgerAccount
	err := r.pool.QueryRow(ctx, query, accountCode).Scan(&acc.AccountCode, &acc.Label, &acc.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}
	return &acc, nil
}

// ListAccounts retrieves the full chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.LedgerAccount, error) {
	query := `SELECT account_code, label, category FROM ledger_accounts ORDER BY account_code;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.LedgerAccount{}
	for rows.Next() {
		var acc domain.LedgerAccount
		if err := rows.Scan(&acc.AccountCode, &acc.Label, &acc.Category); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}
