package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

var (
	// ErrNoPeriodFound indicates that no accounting period of the ledger
	// contains the operation date. Fatal for entry generation.
	ErrNoPeriodFound = errors.New("no accounting period contains the operation date")

	// ErrPeriodOverlap indicates that a new period would intersect an existing one.
	ErrPeriodOverlap = errors.New("period overlaps an existing period")

	// ErrPeriodClosed indicates an attempt to record into a closed period.
	ErrPeriodClosed = errors.New("accounting period is closed")
)

// periodService provides accounting period operations.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new PeriodService.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new period after validating its date range and
// checking it against every existing period of the ledger.
func (s *periodService) CreatePeriod(ctx context.Context, ledgerID string, req dto.CreatePeriodRequest, creatorUserID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date %s precedes start date %s",
			apperrors.ErrValidation, req.EndDate.Format("2006-01-02"), req.StartDate.Format("2006-01-02"))
	}

	overlapping, err := s.periodRepo.FindOverlappingPeriods(ctx, ledgerID, req.StartDate, req.EndDate)
	if err != nil {
		logger.Error("Failed to check period overlap", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to check period overlap: %w", err)
	}
	// The repository fetch is a coarse date-range candidate set; the domain
	// rule decides.
	for _, existing := range overlapping {
		if existing.Overlaps(req.StartDate, req.EndDate) {
			return nil, fmt.Errorf("%w: %s intersects period %q", ErrPeriodOverlap, req.Name, existing.Name)
		}
	}

	now := time.Now().UTC()
	period := domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		LedgerID:  ledgerID,
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Status:    domain.PeriodOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()), slog.String("ledger_id", ledgerID))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	logger.Info("Accounting period created", slog.String("period_id", period.PeriodID), slog.String("ledger_id", ledgerID))
	return &period, nil
}

// FindPeriodForDate locates the period containing the given date. The
// non-overlap invariant guarantees at most one match.
func (s *periodService) FindPeriodForDate(ctx context.Context, ledgerID string, date time.Time) (*domain.AccountingPeriod, error) {
	period, err := s.periodRepo.FindPeriodForDate(ctx, ledgerID, date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNoPeriodFound, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to find period for date: %w", err)
	}
	if !period.Contains(date) {
		// The store row disagrees with the domain rule; treat it as no match.
		return nil, fmt.Errorf("%w: %s", ErrNoPeriodFound, date.Format("2006-01-02"))
	}
	return period, nil
}

// ListPeriods retrieves all periods of a ledger ordered by start date.
func (s *periodService) ListPeriods(ctx context.Context, ledgerID string) ([]domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriodsByLedger(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// ClosePeriod transitions an open period to CLOSED.
func (s *periodService) ClosePeriod(ctx context.Context, ledgerID, periodID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		return fmt.Errorf("failed to find period %s: %w", periodID, err)
	}
	if period.LedgerID != ledgerID {
		return apperrors.ErrNotFound
	}
	if period.Status == domain.PeriodClosed {
		return fmt.Errorf("%w: period %s", apperrors.ErrConflict, period.Name)
	}

	if err := s.periodRepo.UpdatePeriodStatus(ctx, periodID, domain.PeriodClosed, userID); err != nil {
		logger.Error("Failed to close period", slog.String("error", err.Error()), slog.String("period_id", periodID))
		return fmt.Errorf("failed to close period: %w", err)
	}

	logger.Info("Accounting period closed", slog.String("period_id", periodID), slog.String("ledger_id", ledgerID))
	return nil
}
