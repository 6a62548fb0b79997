package repositories

import (
	"context"
	"time"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// PeriodReader defines read operations for accounting periods.
type PeriodReader interface {
	// FindPeriodByID retrieves a period by its identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error)

	// FindPeriodForDate retrieves the period of the ledger containing the
	// given date, boundaries inclusive. Returns apperrors.ErrNotFound when
	// no period contains it.
	FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriodsByLedger retrieves all periods of a ledger ordered by start date.
	ListPeriodsByLedger(ctx context.Context, ledgerID string) ([]domain.AccountingPeriod, error)

	// FindOverlappingPeriods retrieves periods of the ledger intersecting [start, end].
	FindOverlappingPeriods(ctx context.Context, ledgerID string, start, end time.Time) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting periods.
type PeriodWriter interface {
	// SavePeriod persists a new accounting period.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// UpdatePeriodStatus transitions a period between OPEN and CLOSED.
	UpdatePeriodStatus(ctx context.Context, periodID string, status domain.PeriodStatus, updatedBy string) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
