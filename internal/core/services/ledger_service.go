package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// ledgerService manages the entities that scope documents and periods.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateLedger creates a new ledger.
func (s *ledgerService) CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ledger := domain.Ledger{
		LedgerID:     uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		logger.Error("Failed to save ledger", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	logger.Info("Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("name", ledger.Name))
	return &ledger, nil
}

// GetLedgerByID retrieves a ledger by its identifier.
func (s *ledgerService) GetLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error) {
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find ledger %s: %w", ledgerID, err)
	}
	return ledger, nil
}

// ListLedgers retrieves all ledgers.
func (s *ledgerService) ListLedgers(ctx context.Context) ([]domain.Ledger, error) {
	ledgers, err := s.ledgerRepo.ListLedgers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	return ledgers, nil
}
