package services

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	"github.com/plcoutant/compta_engine/internal/dto"
)

// LedgerSvcFacade manages the accounting entities that scope documents and periods.
type LedgerSvcFacade interface {
	// CreateLedger creates a new ledger.
	CreateLedger(ctx context.Context, req dto.CreateLedgerRequest, creatorUserID string) (*domain.Ledger, error)

	// GetLedgerByID retrieves a ledger by its identifier.
	GetLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListLedgers retrieves all ledgers.
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
}
