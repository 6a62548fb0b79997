package domain

// Ledger scopes documents, periods and journal lines for one accounting
// entity. Document numbers are unique per ledger, not globally.
type Ledger struct {
	LedgerID     string `json:"ledgerID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	Description  string `json:"description"`
	AuditFields
}
