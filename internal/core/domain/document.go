package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind is the closed set of source document types the engine accepts.
// The kind is always supplied by the caller, never inferred from text.
type DocumentKind string

const (
	PurchaseInvoice    DocumentKind = "PURCHASE_INVOICE"
	SalesInvoice       DocumentKind = "SALES_INVOICE"
	ExpenseNote        DocumentKind = "EXPENSE_NOTE"
	BankLine           DocumentKind = "BANK_LINE"
	SupplierCreditNote DocumentKind = "SUPPLIER_CREDIT_NOTE"
	CustomerCreditNote DocumentKind = "CUSTOMER_CREDIT_NOTE"
	PayrollSlip        DocumentKind = "PAYROLL_SLIP"
	VATReturn          DocumentKind = "VAT_RETURN"
	Depreciation       DocumentKind = "DEPRECIATION"
	Provision          DocumentKind = "PROVISION"
	Adjustment         DocumentKind = "ADJUSTMENT"
)

// AllDocumentKinds lists every supported kind, used for input validation.
var AllDocumentKinds = []DocumentKind{
	PurchaseInvoice, SalesInvoice, ExpenseNote, BankLine,
	SupplierCreditNote, CustomerCreditNote, PayrollSlip, VATReturn,
	Depreciation, Provision, Adjustment,
}

// IsValid reports whether k is one of the supported document kinds.
func (k DocumentKind) IsValid() bool {
	for _, known := range AllDocumentKinds {
		if k == known {
			return true
		}
	}
	return false
}

// DocumentStatus indicates the lifecycle state of a source document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusValid     DocumentStatus = "VALID"
	StatusCancelled DocumentStatus = "CANCELLED"
)

// SourceDocument represents one financial event recorded in the ledger.
// The tax-inclusive amount always equals tax-exclusive + tax, within the
// rounding tolerance absorbed by the balance check.
type SourceDocument struct {
	DocumentNumber string          `json:"documentNumber"` // Caller-supplied, unique within the ledger
	LedgerID       string          `json:"ledgerID"`
	Kind           DocumentKind    `json:"kind"`
	OperationDate  time.Time       `json:"operationDate"`
	Label          string          `json:"label"`
	Description    string          `json:"description"` // Optional free text
	TaxExclusive   decimal.Decimal `json:"taxExclusive"`
	Tax            decimal.Decimal `json:"tax"`
	TaxInclusive   decimal.Decimal `json:"taxInclusive"`
	TaxRate        decimal.Decimal `json:"taxRate"` // Percentage, e.g. 20
	PeriodID       string          `json:"periodID"`
	Status         DocumentStatus  `json:"status"`
	AuditFields

	// Lines are loaded separately; populated only on full document reads.
	Lines []JournalLine `json:"lines,omitempty"`
}
