package repositories

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// DocumentReader defines read operations for source documents and their lines.
type DocumentReader interface {
	// FindDocumentByNumber retrieves a source document by its ledger-scoped number.
	FindDocumentByNumber(ctx context.Context, ledgerID, documentNumber string) (*domain.SourceDocument, error)

	// FindLinesByDocument retrieves all journal lines of a document, in insertion order.
	FindLinesByDocument(ctx context.Context, ledgerID, documentNumber string) ([]domain.JournalLine, error)

	// ListDocumentsByPeriod retrieves documents whose operation date fell in the given period.
	ListDocumentsByPeriod(ctx context.Context, ledgerID, periodID string, limit int) ([]domain.SourceDocument, error)
}

// DocumentWriter defines write operations for source documents.
type DocumentWriter interface {
	// SaveDocument persists a source document and its journal lines atomically.
	// A duplicate document number surfaces as apperrors.ErrDuplicate.
	SaveDocument(ctx context.Context, doc domain.SourceDocument, lines []domain.JournalLine) error

	// UpdateDocumentStatus transitions the status of an existing document.
	UpdateDocumentStatus(ctx context.Context, ledgerID, documentNumber string, status domain.DocumentStatus, updatedBy string) error
}

// SuggestionReader defines the read-only historical query behind account suggestions.
type SuggestionReader interface {
	// FindAccountUsage groups past journal lines of matching documents by
	// (account, label) and returns them ordered by frequency descending.
	FindAccountUsage(ctx context.Context, ledgerID string, kind domain.DocumentKind, labelFragment string, limit int) ([]domain.AccountUsage, error)
}

// DocumentRepositoryFacade combines all document-related repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	SuggestionReader
}
