package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalCode groups journal lines by transaction origin.
type JournalCode string

const (
	JournalPurchases     JournalCode = "ACH" // Purchases journal
	JournalSales         JournalCode = "VTE" // Sales journal
	JournalBank          JournalCode = "BQ"  // Bank journal
	JournalMiscellaneous JournalCode = "OD"  // Miscellaneous operations
)

// JournalLine is one debit-or-credit entry against a single account.
// Exactly one of Debit and Credit is non-zero; lines belong to exactly one
// source document and one accounting period and are never created alone.
type JournalLine struct {
	LineID         string          `json:"lineID"`
	LedgerID       string          `json:"ledgerID"`
	DocumentNumber string          `json:"documentNumber"` // FK -> source_documents.document_number
	PeriodID       string          `json:"periodID"`       // FK -> accounting_periods.period_id
	JournalCode    JournalCode     `json:"journalCode"`
	OperationDate  time.Time       `json:"operationDate"`
	AccountCode    string          `json:"accountCode"` // PCG chart-of-accounts code
	Label          string          `json:"label"`
	Debit          decimal.Decimal `json:"debit"`  // >= 0
	Credit         decimal.Decimal `json:"credit"` // >= 0
	AuditFields
}
