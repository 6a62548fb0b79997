package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// GenerateEntriesRequest carries one source document to be turned into
// balanced journal lines. Monetary fields are pointers: absent fields are
// derived by the amount resolver, at least one must be supplied.
type GenerateEntriesRequest struct {
	DocumentNumber string              `json:"documentNumber" binding:"required,max=64"`
	Kind           domain.DocumentKind `json:"kind" binding:"required,documentkind"`
	OperationDate  time.Time           `json:"operationDate" binding:"required"`
	Label          string              `json:"label" binding:"required,max=255"`
	Description    string              `json:"description" binding:"max=1024"`
	TaxExclusive   *decimal.Decimal    `json:"taxExclusive,omitempty"`
	Tax            *decimal.Decimal    `json:"tax,omitempty"`
	TaxInclusive   *decimal.Decimal    `json:"taxInclusive,omitempty"`
	TaxRate        *decimal.Decimal    `json:"taxRate,omitempty"` // Percentage; defaults to 20
}

// JournalLineResponse defines the data returned for one journal line.
type JournalLineResponse struct {
	LineID         string          `json:"lineID"`
	DocumentNumber string          `json:"documentNumber"`
	PeriodID       string          `json:"periodID"`
	JournalCode    string          `json:"journalCode"`
	OperationDate  time.Time       `json:"operationDate"`
	AccountCode    string          `json:"accountCode"`
	Label          string          `json:"label"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// DocumentResponse defines the data returned for a source document.
type DocumentResponse struct {
	DocumentNumber string          `json:"documentNumber"`
	LedgerID       string          `json:"ledgerID"`
	Kind           string          `json:"kind"`
	OperationDate  time.Time       `json:"operationDate"`
	Label          string          `json:"label"`
	Description    string          `json:"description,omitempty"`
	TaxExclusive   decimal.Decimal `json:"taxExclusive"`
	Tax            decimal.Decimal `json:"tax"`
	TaxInclusive   decimal.Decimal `json:"taxInclusive"`
	TaxRate        decimal.Decimal `json:"taxRate"`
	PeriodID       string          `json:"periodID"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ClassificationResponse exposes the classifier outcome, including whether a
// rule or keyword actually matched or the defaults were used.
type ClassificationResponse struct {
	DebitAccount   string `json:"debitAccount"`
	CreditAccount  string `json:"creditAccount"`
	JournalCode    string `json:"journalCode"`
	Matched        bool   `json:"matched"`
	MatchedKeyword string `json:"matchedKeyword,omitempty"`
}

// GenerateEntriesResponse combines the persisted document and its lines.
type GenerateEntriesResponse struct {
	Document       DocumentResponse       `json:"document"`
	Lines          []JournalLineResponse  `json:"lines"`
	Classification ClassificationResponse `json:"classification"`
}

// BalanceReportResponse defines the data returned by the balance check.
type BalanceReportResponse struct {
	DocumentNumber string          `json:"documentNumber"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Difference     decimal.Decimal `json:"difference"`
	Balanced       bool            `json:"balanced"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:         line.LineID,
		DocumentNumber: line.DocumentNumber,
		PeriodID:       line.PeriodID,
		JournalCode:    string(line.JournalCode),
		OperationDate:  line.OperationDate,
		AccountCode:    line.AccountCode,
		Label:          line.Label,
		Debit:          line.Debit,
		Credit:         line.Credit,
	}
}

// ToJournalLineResponses converts a slice of domain.JournalLine to DTOs.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	responses := make([]JournalLineResponse, len(lines))
	for i := range lines {
		responses[i] = ToJournalLineResponse(&lines[i])
	}
	return responses
}

// ToDocumentResponse converts a domain.SourceDocument to its DTO.
func ToDocumentResponse(doc *domain.SourceDocument) DocumentResponse {
	return DocumentResponse{
		DocumentNumber: doc.DocumentNumber,
		LedgerID:       doc.LedgerID,
		Kind:           string(doc.Kind),
		OperationDate:  doc.OperationDate,
		Label:          doc.Label,
		Description:    doc.Description,
		TaxExclusive:   doc.TaxExclusive,
		Tax:            doc.Tax,
		TaxInclusive:   doc.TaxInclusive,
		TaxRate:        doc.TaxRate,
		PeriodID:       doc.PeriodID,
		Status:         string(doc.Status),
		CreatedAt:      doc.CreatedAt,
	}
}

// ToDocumentResponses converts a slice of domain.SourceDocument to DTOs.
func ToDocumentResponses(docs []domain.SourceDocument) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}

// ToClassificationResponse converts a domain.Classification to its DTO.
func ToClassificationResponse(c domain.Classification) ClassificationResponse {
	return ClassificationResponse{
		DebitAccount:   c.DebitAccount,
		CreditAccount:  c.CreditAccount,
		JournalCode:    string(c.JournalCode),
		Matched:        c.Matched,
		MatchedKeyword: c.MatchedKeyword,
	}
}

// ToBalanceReportResponse converts a domain.BalanceReport to its DTO.
func ToBalanceReportResponse(report domain.BalanceReport) BalanceReportResponse {
	return BalanceReportResponse{
		DocumentNumber: report.DocumentNumber,
		TotalDebit:     report.TotalDebit,
		TotalCredit:    report.TotalCredit,
		Difference:     report.Difference,
		Balanced:       report.Balanced,
	}
}
