package services

import (
	"context"

	"github.com/plcoutant/compta_engine/internal/core/domain"
	"github.com/plcoutant/compta_engine/internal/dto"
)

// EntryGeneratorSvc defines the core generation operation: turn one source
// document into a persisted document plus balanced journal lines.
type EntryGeneratorSvc interface {
	// GenerateEntries resolves amounts, locates the accounting period,
	// classifies the document and persists it with its lines atomically.
	// Fails with ErrNoPeriodFound when the operation date is outside all
	// known periods; nothing is persisted in that case.
	GenerateEntries(ctx context.Context, ledgerID string, req dto.GenerateEntriesRequest, creatorUserID string) (*domain.SourceDocument, domain.Classification, error)
}

// DocumentReaderSvc defines read operations for generated documents.
type DocumentReaderSvc interface {
	// GetDocument retrieves a document with its journal lines.
	GetDocument(ctx context.Context, ledgerID, documentNumber string) (*domain.SourceDocument, error)

	// ListDocumentsByPeriod retrieves the documents recorded in a period,
	// ordered by operation date. limit <= 0 applies a server-side default.
	ListDocumentsByPeriod(ctx context.Context, ledgerID, periodID string, limit int) ([]domain.SourceDocument, error)
}

// BalanceValidatorSvc defines the post-hoc balance audit.
type BalanceValidatorSvc interface {
	// CheckBalance sums the debit and credit legs of a persisted document.
	CheckBalance(ctx context.Context, ledgerID, documentNumber string) (*domain.BalanceReport, error)
}

// DocumentSvcFacade combines all document-related service interfaces.
type DocumentSvcFacade interface {
	EntryGeneratorSvc
	DocumentReaderSvc
	BalanceValidatorSvc
}
