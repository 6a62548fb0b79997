package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
)

// suggestionLimit caps the ranked list returned to callers.
const suggestionLimit = 5

// suggestionService ranks historical account choices for similar labels.
type suggestionService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(documentRepo portsrepo.DocumentRepositoryFacade) portssvc.SuggestionSvcFacade {
	return &suggestionService{documentRepo: documentRepo}
}

var _ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)

// Suggest returns the most frequent (account, label) pairs among past journal
// lines whose document kind matches and whose label contains the fragment.
// Advisory only: errors are infrastructure errors, never domain ones.
func (s *suggestionService) Suggest(ctx context.Context, ledgerID string, kind domain.DocumentKind, labelFragment string) ([]domain.AccountUsage, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	fragment := strings.TrimSpace(labelFragment)
	usages, err := s.documentRepo.FindAccountUsage(ctx, ledgerID, kind, fragment, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query account usage: %w", err)
	}
	return usages, nil
}
