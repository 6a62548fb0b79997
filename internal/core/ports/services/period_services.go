package services

import (
	"context"
	"time"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	"github.com/plcoutant/compta_engine/internal/dto"
)

// PeriodReaderSvc defines read operations for accounting periods.
type PeriodReaderSvc interface {
	// FindPeriodForDate locates the period of the ledger containing the date.
	// Fails with ErrNoPeriodFound when none does.
	FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.AccountingPeriod, error)

	// ListPeriods retrieves all periods of a ledger ordered by start date.
	ListPeriods(ctx context.Context, ledgerID string) ([]domain.AccountingPeriod, error)
}

// PeriodWriterSvc defines write operations for accounting periods.
type PeriodWriterSvc interface {
	// CreatePeriod opens a new period after checking it overlaps no existing one.
	CreatePeriod(ctx context.Context, ledgerID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error)

	// ClosePeriod transitions a period to CLOSED.
	ClosePeriod(ctx context.Context, ledgerID, periodID string, userID string) error
}

// PeriodSvcFacade combines all period-related service interfaces.
type PeriodSvcFacade interface {
	PeriodReaderSvc
	PeriodWriterSvc
}
