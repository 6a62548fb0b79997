package services

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// SuggestionSvcFacade ranks historical account choices for similar labels.
// Purely advisory; never on the correctness-critical path.
type SuggestionSvcFacade interface {
	// Suggest returns up to five (account, sample label, frequency) entries
	// for past documents of the same kind whose label contains the fragment.
	Suggest(ctx context.Context, ledgerID string, kind domain.DocumentKind, labelFragment string) ([]domain.AccountUsage, error)
}
