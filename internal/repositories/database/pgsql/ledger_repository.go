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

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// NewPgxLedgerRepository creates a new repository for ledgers.
func NewPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

// SaveLedger persists a new ledger.
func (r *PgxLedgerRepository) SaveLedger(ctx context.Context, ledger domain.Ledger) error {
	query := `
		INSERT INTO ledgers (ledger_id, name, currency_code, description,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		ledger.LedgerID,
		ledger.Name,
		ledger.CurrencyCode,
		ledger.Description,
		ledger.CreatedAt,
		ledger.CreatedBy,
		ledger.LastUpdatedAt,
		ledger.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger %s: %w", ledger.LedgerID, err)
	}
	return nil
}

// FindLedgerByID retrieves a ledger by its identifier.
func (r *PgxLedgerRepository) FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	query := `
		SELECT ledger_id, name, currency_code, description,
			created_at, created_by, last_updated_at, last_updated_by
		FROM ledgers
		WHERE ledger_id = $1;
	`
	var ledger domain.Ledger
	err := r.pool.QueryRow(ctx, query, ledgerID).Scan(
		&ledger.LedgerID,
		&ledger.Name,
		&ledger.CurrencyCode,
		&ledger.Description,
		&ledger.CreatedAt,
		&ledger.CreatedBy,
		&ledger.LastUpdatedAt,
		&ledger.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return &ledger, nil
}

// ListLedgers retrieves all ledgers ordered by creation date.
func (r *PgxLedgerRepository) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	query := `
		SELECT ledger_id, name, currency_code, description,
			created_at, created_by, last_updated_at, last_updated_by
		FROM ledgers
		ORDER BY created_at;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledgers: %w", err)
	}
	defer rows.Close()

	ledgers := []domain.Ledger{}
	for rows.Next() {
		var ledger domain.Ledger
		if err := rows.Scan(
			&ledger.LedgerID,
			&ledger.Name,
			&ledger.CurrencyCode,
			&ledger.Description,
			&ledger.CreatedAt,
			&ledger.CreatedBy,
			&ledger.LastUpdatedAt,
			&ledger.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		ledgers = append(ledgers, ledger)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return ledgers, nil
}
