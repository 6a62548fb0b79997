package domain

// AccountCategory tags a ledger account for reporting purposes only; the
// generation logic never branches on it.
type AccountCategory string

const (
	CategoryAsset     AccountCategory = "ASSET"
	CategoryLiability AccountCategory = "LIABILITY"
	CategoryIncome    AccountCategory = "INCOME"
	CategoryExpense   AccountCategory = "EXPENSE"
	CategoryTax       AccountCategory = "TAX"
	CategoryEquity    AccountCategory = "EQUITY"
)

// LedgerAccount is one entry of the chart of accounts (French PCG numbering).
type LedgerAccount struct {
	AccountCode string          `json:"accountCode"` // Canonical numeric code, e.g. "607"
	Label       string          `json:"label"`
	Category    AccountCategory `json:"category"`
}
