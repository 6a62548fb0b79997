package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPeriodRepository creates a new repository for accounting periods.
func NewPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{pool: pool}
}

const periodColumns = `period_id, ledger_id, name, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.LedgerID,
		&p.Name,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePeriod persists a new accounting period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	query := `
		INSERT INTO accounting_periods (period_id, ledger_id, name, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		period.PeriodID,
		period.LedgerID,
		period.Name,
		period.StartDate,
		period.EndDate,
		period.Status,
		period.CreatedAt,
		period.CreatedBy,
		period.LastUpdatedAt,
		period.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: period %s", apperrors.ErrDuplicate, period.Name)
		}
		return fmt.Errorf("failed to insert period %s: %w", period.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its identifier.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := fmt.Sprintf(`SELECT %s FROM accounting_periods WHERE period_id = $1;`, periodColumns)
	period, err := scanPeriod(r.pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	return period, nil
}

// FindPeriodForDate retrieves the period of the ledger containing the date,
// boundaries inclusive. The non-overlap constraint makes the match unique.
func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.AccountingPeriod, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounting_periods
		WHERE ledger_id = $1 AND start_date <= $2::date AND end_date >= $2::date;
	`, periodColumns)
	period, err := scanPeriod(r.pool.QueryRow(ctx, query, ledgerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period for date %s: %w", date.Format("2006-01-02"), err)
	}
	return period, nil
}

// ListPeriodsByLedger retrieves all periods of a ledger ordered by start date.
func (r *PgxPeriodRepository) ListPeriodsByLedger(ctx context.Context, ledgerID string) ([]domain.AccountingPeriod, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounting_periods
		WHERE ledger_id = $1
		ORDER BY start_date;
	`, periodColumns)
	rows, err := r.pool.Query(ctx, query, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, *period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows for ledger %s: %w", ledgerID, err)
	}

	return periods, nil
}

// FindOverlappingPeriods retrieves periods of the ledger intersecting [start, end].
func (r *PgxPeriodRepository) FindOverlappingPeriods(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.AccountingPeriod, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM accounting_periods
		WHERE ledger_id = $1 AND end_date >= $2::date AND start_date <= $3::date
		ORDER BY start_date;
	`, periodColumns)
	rows, err := r.pool.Query(ctx, query, ledgerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping periods for ledger %s: %w", ledgerID, err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, *period)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overlapping period rows: %w", err)
	}

	return periods, nil
}

// UpdatePeriodStatus transitions a period between OPEN and CLOSED.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, updatedBy string) error {
	query := `
		UPDATE accounting_periods
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE period_id = $3;
	`
	tag, err := r.pool.Exec(ctx, query, status, updatedBy, periodID)
	if err != nil {
		return fmt.Errorf("failed to update status for period %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
