package domain

import "github.com/shopspring/decimal"

// BalanceTolerance is the maximum accepted gap between the debit and credit
// sums of one document, absorbing rounding residue from tax derivation.
var BalanceTolerance = decimal.RequireFromString("0.01")

// BalanceReport is the outcome of summing the debit and credit legs of one
// source document.
type BalanceReport struct {
	DocumentNumber string          `json:"documentNumber"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Difference     decimal.Decimal `json:"difference"`
	Balanced       bool            `json:"balanced"`
}

// NewBalanceReport sums the legs of the given lines and compares them within
// BalanceTolerance.
func NewBalanceReport(documentNumber string, lines []JournalLine) BalanceReport {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	diff := totalDebit.Sub(totalCredit)
	return BalanceReport{
		DocumentNumber: documentNumber,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Difference:     diff,
		Balanced:       diff.Abs().LessThan(BalanceTolerance),
	}
}
