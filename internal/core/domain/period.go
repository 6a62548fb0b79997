package domain

import "time"

// PeriodStatus indicates whether a period still accepts entries.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is an inclusive [StartDate, EndDate] range within which
// operations are recorded. Periods of the same ledger never overlap, so an
// operation date falls in at most one period.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"`
	LedgerID  string       `json:"ledgerID"`
	Name      string       `json:"name"` // e.g. "2026-03" or "FY2026"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether d falls inside the period, boundaries included.
// Comparison is done on calendar days to ignore time-of-day noise.
func (p AccountingPeriod) Contains(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	start := p.StartDate.Truncate(24 * time.Hour)
	end := p.EndDate.Truncate(24 * time.Hour)
	return !day.Before(start) && !day.After(end)
}

// Overlaps reports whether two date ranges share at least one day.
func (p AccountingPeriod) Overlaps(start, end time.Time) bool {
	return !p.EndDate.Before(start) && !end.Before(p.StartDate)
}
