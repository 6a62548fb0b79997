package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plcoutant/compta_engine/internal/apperrors"
	"github.com/plcoutant/compta_engine/internal/core/domain"
	portsrepo "github.com/plcoutant/compta_engine/internal/core/ports/repositories"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

type PgxDocumentRepository struct {
	pool *pgxpool.Pool
}

// NewPgxDocumentRepository creates a new repository for source documents and journal lines.
func NewPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{pool: pool}
}

// SaveDocument saves a source document and its journal lines within one DB
// transaction; either everything commits or nothing does.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.SourceDocument, lines []domain.JournalLine) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	docQuery := `
		INSERT INTO source_documents (document_number, ledger_id, kind, operation_date, label, description,
			tax_exclusive, tax, tax_inclusive, tax_rate, period_id, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, docQuery,
		doc.DocumentNumber,
		doc.LedgerID,
		doc.Kind,
		doc.OperationDate,
		doc.Label,
		doc.Description,
		doc.TaxExclusive,
		doc.Tax,
		doc.TaxInclusive,
		doc.TaxRate,
		doc.PeriodID,
		doc.Status,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: document number %s", apperrors.ErrDuplicate, doc.DocumentNumber)
		}
		return fmt.Errorf("failed to insert document %s: %w", doc.DocumentNumber, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, ledger_id, document_number, period_id, journal_code,
			operation_date, account_code, label, debit, credit,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, line := range lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.LedgerID,
			line.DocumentNumber,
			line.PeriodID,
			line.JournalCode,
			line.OperationDate,
			line.AccountCode,
			line.Label,
			line.Debit,
			line.Credit,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for document %s: %w", doc.DocumentNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for document %s: %w", doc.DocumentNumber, err)
	}

	return nil
}

// FindDocumentByNumber retrieves a source document by its ledger-scoped number.
func (r *PgxDocumentRepository) FindDocumentByNumber(ctx context.Context, ledgerID, documentNumber string) (*domain.SourceDocument, error) {
	query := `
		SELECT document_number, ledger_id, kind, operation_date, label, description,
			tax_exclusive, tax, tax_inclusive, tax_rate, period_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM source_documents
		WHERE ledger_id = $1 AND document_number = $2;
	`
	var doc domain.SourceDocument
	err := r.pool.QueryRow(ctx, query, ledgerID, documentNumber).Scan(
		&doc.DocumentNumber,
		&doc.LedgerID,
		&doc.Kind,
		&doc.OperationDate,
		&doc.Label,
		&doc.Description,
		&doc.TaxExclusive,
		&doc.Tax,
		&doc.TaxInclusive,
		&doc.TaxRate,
		&doc.PeriodID,
		&doc.Status,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&doc.LastUpdatedAt,
		&doc.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentNumber, err)
	}

	return &doc, nil
}

// FindLinesByDocument retrieves all journal lines of a document in insertion order.
func (r *PgxDocumentRepository) FindLinesByDocument(ctx context.Context, ledgerID, documentNumber string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, ledger_id, document_number, period_id, journal_code,
			operation_date, account_code, label, debit, credit,
			created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE ledger_id = $1 AND document_number = $2
		ORDER BY created_at, line_id;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for document %s: %w", documentNumber, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var line domain.JournalLine
		if err := rows.Scan(
			&line.LineID,
			&line.LedgerID,
			&line.DocumentNumber,
			&line.PeriodID,
			&line.JournalCode,
			&line.OperationDate,
			&line.AccountCode,
			&line.Label,
			&line.Debit,
			&line.Credit,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row for document %s: %w", documentNumber, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for document %s: %w", documentNumber, err)
	}

	return lines, nil
}

// ListDocumentsByPeriod retrieves documents recorded in a given period.
func (r *PgxDocumentRepository) ListDocumentsByPeriod(ctx context.Context, ledgerID, periodID string, limit int) ([]domain.SourceDocument, error) {
	query := `
		SELECT document_number, ledger_id, kind, operation_date, label, description,
			tax_exclusive, tax, tax_inclusive, tax_rate, period_id, status,
			created_at, created_by, last_updated_at, last_updated_by
		FROM source_documents
		WHERE ledger_id = $1 AND period_id = $2
		ORDER BY operation_date, document_number
		LIMIT $3;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, periodID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for period %s: %w", periodID, err)
	}
	defer rows.Close()

	docs := []domain.SourceDocument{}
	for rows.Next() {
		var doc domain.SourceDocument
		if err := rows.Scan(
			&doc.DocumentNumber,
			&doc.LedgerID,
			&doc.Kind,
			&doc.OperationDate,
			&doc.Label,
			&doc.Description,
			&doc.TaxExclusive,
			&doc.Tax,
			&doc.TaxInclusive,
			&doc.TaxRate,
			&doc.PeriodID,
			&doc.Status,
			&doc.CreatedAt,
			&doc.CreatedBy,
			&doc.LastUpdatedAt,
			&doc.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows for period %s: %w", periodID, err)
	}

	return docs, nil
}

// UpdateDocumentStatus transitions the status of an existing document.
func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, ledgerID, documentNumber string, status domain.DocumentStatus, updatedBy string) error {
	query := `
		UPDATE source_documents
		SET status = $1, last_updated_at = NOW(), last_updated_by = $2
		WHERE ledger_id = $3 AND document_number = $4;
	`
	tag, err := r.pool.Exec(ctx, query, status, updatedBy, ledgerID, documentNumber)
	if err != nil {
		return fmt.Errorf("failed to update status for document %s: %w", documentNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// likeEscaper quotes the LIKE metacharacters so a fragment matches literally
// inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// FindAccountUsage groups past journal lines of matching documents by
// (account, label) and returns the most frequent pairs.
func (r *PgxDocumentRepository) FindAccountUsage(ctx context.Context, ledgerID string, kind domain.DocumentKind, labelFragment string, limit int) ([]domain.AccountUsage, error) {
	labelFragment = likeEscaper.Replace(labelFragment)
	query := `
		SELECT l.account_code, l.label, COUNT(*) AS frequency
		FROM journal_lines l
		JOIN source_documents d
			ON d.ledger_id = l.ledger_id AND d.document_number = l.document_number
		WHERE l.ledger_id = $1
			AND d.kind = $2
			AND ($3 = '' OR l.label ILIKE '%' || $3 || '%')
		GROUP BY l.account_code, l.label
		ORDER BY frequency DESC, l.account_code
		LIMIT $4;
	`
	rows, err := r.pool.Query(ctx, query, ledgerID, kind, labelFragment, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query account usage: %w", err)
	}
	defer rows.Close()

	usages := []domain.AccountUsage{}
	for rows.Next() {
		var usage domain.AccountUsage
		if err := rows.Scan(&usage.AccountCode, &usage.SampleLabel, &usage.Frequency); err != nil {
			return nil, fmt.Errorf("failed to scan account usage row: %w", err)
		}
		usages = append(usages, usage)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account usage rows: %w", err)
	}

	return usages, nil
}
