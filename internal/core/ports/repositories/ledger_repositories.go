package repositories

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// LedgerReader defines read operations for ledgers.
type LedgerReader interface {
	// FindLedgerByID retrieves a ledger by its identifier.
	FindLedgerByID(ctx context.Context, ledgerID string) (*domain.Ledger, error)

	// ListLedgers retrieves all ledgers ordered by creation date.
	ListLedgers(ctx context.Context) ([]domain.Ledger, error)
}

// LedgerWriter defines write operations for ledgers.
type LedgerWriter interface {
	// SaveLedger persists a new ledger.
	SaveLedger(ctx context.Context, ledger domain.Ledger) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
