package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
	portssvc "github.com/plcoutant/compta_engine/internal/core/ports/services"
	"github.com/plcoutant/compta_engine/internal/core/taxonomy"
	"github.com/plcoutant/compta_engine/internal/dto"
	"github.com/plcoutant/compta_engine/internal/middleware"
)

// ErrEntryUnbalanced indicates that the generated lines fail the double-entry
// check. It acts as a pre-commit gate: nothing is persisted when it fires.
var ErrEntryUnbalanced = errors.New("generated entries do not balance")

// documentService orchestrates amount resolution, period lookup,
// classification and atomic persistence of a document with its lines.
type documentService struct {
	documentRepo   portsrepo.DocumentRepositoryFacade
	periodSvc      portssvc.PeriodSvcFacade
	classifier     *Classifier
	defaultTaxRate decimal.Decimal
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, periodSvc portssvc.PeriodSvcFacade, classifier *Classifier, defaultTaxRate decimal.Decimal) portssvc.DocumentSvcFacade {
	if defaultTaxRate.IsZero() {
		defaultTaxRate = DefaultTaxRate
	}
	return &documentService{
		documentRepo:   documentRepo,
		periodSvc:      periodSvc,
		classifier:     classifier,
		defaultTaxRate: defaultTaxRate,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// GenerateEntries turns one source document into a persisted document plus
// balanced journal lines. Single pass, no intermediate state: resolve
// amounts, resolve period (fatal on miss), classify, build lines, check the
// balance gate, save atomically.
func (s *documentService) GenerateEntries(ctx context.Context, ledgerID string, req dto.GenerateEntriesRequest, creatorUserID string) (*domain.SourceDocument, domain.Classification, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.IsValid() {
		return nil, domain.Classification{}, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, req.Kind)
	}

	// The request rate passes through untouched, nil included, so that a
	// document carrying both legs records its effective rate rather than the
	// configured default.
	amounts, err := ResolveAmounts(AmountInput{
		TaxExclusive: req.TaxExclusive,
		Tax:          req.Tax,
		TaxInclusive: req.TaxInclusive,
		TaxRate:      req.TaxRate,
	}, s.defaultTaxRate)
	if err != nil {
		return nil, domain.Classification{}, err
	}

	period, err := s.periodSvc.FindPeriodForDate(ctx, ledgerID, req.OperationDate)
	if err != nil {
		// No implicit period creation: the whole operation aborts here.
		return nil, domain.Classification{}, err
	}
	if period.Status == domain.PeriodClosed {
		return nil, domain.Classification{}, fmt.Errorf("%w: %s", ErrPeriodClosed, period.Name)
	}

	classification := s.classifier.Classify(req.Kind, req.Label, req.Description)
	if !classification.Matched {
		logger.Warn("Classification fell back to default accounts",
			slog.String("document_number", req.DocumentNumber),
			slog.String("kind", string(req.Kind)),
			slog.String("label", req.Label),
		)
	}

	now := time.Now().UTC()
	doc := domain.SourceDocument{
		DocumentNumber: req.DocumentNumber,
		LedgerID:       ledgerID,
		Kind:           req.Kind,
		OperationDate:  req.OperationDate,
		Label:          req.Label,
		Description:    req.Description,
		TaxExclusive:   amounts.TaxExclusive,
		Tax:            amounts.Tax,
		TaxInclusive:   amounts.TaxInclusive,
		TaxRate:        amounts.TaxRate,
		PeriodID:       period.PeriodID,
		Status:         domain.StatusValid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines := s.buildLines(&doc, classification, amounts, now, creatorUserID)

	// Balance gate runs before the store is touched, inside the same logical
	// operation as the insert.
	report := domain.NewBalanceReport(doc.DocumentNumber, lines)
	if !report.Balanced {
		logger.Error("Generated lines failed the balance gate",
			slog.String("document_number", doc.DocumentNumber),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()),
		)
		return nil, domain.Classification{}, fmt.Errorf("%w: debit %s, credit %s", ErrEntryUnbalanced, report.TotalDebit, report.TotalCredit)
	}

	if err := s.documentRepo.SaveDocument(ctx, doc, lines); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save document", slog.String("error", err.Error()), slog.String("document_number", doc.DocumentNumber))
		}
		return nil, domain.Classification{}, fmt.Errorf("failed to save document %s: %w", doc.DocumentNumber, err)
	}

	logger.Info("Entries generated",
		slog.String("document_number", doc.DocumentNumber),
		slog.String("kind", string(doc.Kind)),
		slog.Int("line_count", len(lines)),
		slog.Bool("classification_matched", classification.Matched),
	)

	doc.Lines = lines
	return &doc, classification, nil
}

// buildLines emits the journal lines for the document according to its kind
// shape. Purchase-like and sales-like kinds split tax onto a dedicated line
// when it is non-zero; everything else moves the tax-inclusive amount between
// two accounts.
func (s *documentService) buildLines(doc *domain.SourceDocument, c domain.Classification, amounts Amounts, now time.Time, userID string) []domain.JournalLine {
	newLine := func(accountCode string, debit, credit decimal.Decimal) domain.JournalLine {
		return domain.JournalLine{
			LineID:         uuid.NewString(),
			LedgerID:       doc.LedgerID,
			DocumentNumber: doc.DocumentNumber,
			PeriodID:       doc.PeriodID,
			JournalCode:    c.JournalCode,
			OperationDate:  doc.OperationDate,
			AccountCode:    accountCode,
			Label:          doc.Label,
			Debit:          debit,
			Credit:         credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	hasTax := amounts.Tax.IsPositive()

	switch doc.Kind {
	case domain.PurchaseInvoice:
		lines := []domain.JournalLine{
			newLine(c.DebitAccount, amounts.TaxExclusive, decimal.Zero),
		}
		if hasTax {
			lines = append(lines, newLine(taxonomy.AccountVATDeductible, amounts.Tax, decimal.Zero))
		}
		return append(lines, newLine(c.CreditAccount, decimal.Zero, amounts.TaxInclusive))

	case domain.SalesInvoice:
		lines := []domain.JournalLine{
			newLine(c.DebitAccount, amounts.TaxInclusive, decimal.Zero),
			newLine(c.CreditAccount, decimal.Zero, amounts.TaxExclusive),
		}
		if hasTax {
			lines = append(lines, newLine(taxonomy.AccountVATCollected, decimal.Zero, amounts.Tax))
		}
		return lines

	default:
		amount := amounts.TaxInclusive
		if !hasTax {
			amount = amounts.TaxExclusive
		}
		return []domain.JournalLine{
			newLine(c.DebitAccount, amount, decimal.Zero),
			newLine(c.CreditAccount, decimal.Zero, amount),
		}
	}
}

// GetDocument retrieves a document with its journal lines.
func (s *documentService) GetDocument(ctx context.Context, ledgerID, documentNumber string) (*domain.SourceDocument, error) {
	doc, err := s.documentRepo.FindDocumentByNumber(ctx, ledgerID, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentNumber, err)
	}

	lines, err := s.documentRepo.FindLinesByDocument(ctx, ledgerID, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for document %s: %w", documentNumber, err)
	}
	doc.Lines = lines
	return doc, nil
}

// defaultDocumentListLimit bounds a period listing when the caller asks for
// nothing or for too much.
const defaultDocumentListLimit = 100

// ListDocumentsByPeriod retrieves the documents recorded in a period, ordered
// by operation date. An unknown period simply yields an empty list.
func (s *documentService) ListDocumentsByPeriod(ctx context.Context, ledgerID, periodID string, limit int) ([]domain.SourceDocument, error) {
	if limit <= 0 || limit > defaultDocumentListLimit {
		limit = defaultDocumentListLimit
	}

	docs, err := s.documentRepo.ListDocumentsByPeriod(ctx, ledgerID, periodID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for period %s: %w", periodID, err)
	}
	return docs, nil
}

// CheckBalance sums the debit and credit legs of a persisted document.
// Pure read over stored state, usable as an audit tool at any time.
func (s *documentService) CheckBalance(ctx context.Context, ledgerID, documentNumber string) (*domain.BalanceReport, error) {
	if _, err := s.documentRepo.FindDocumentByNumber(ctx, ledgerID, documentNumber); err != nil {
		return nil, fmt.Errorf("failed to find document %s: %w", documentNumber, err)
	}

	lines, err := s.documentRepo.FindLinesByDocument(ctx, ledgerID, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for document %s: %w", documentNumber, err)
	}

	report := domain.NewBalanceReport(documentNumber, lines)
	return &report, nil
}
