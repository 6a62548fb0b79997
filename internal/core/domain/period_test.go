package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccountingPeriod_Contains(t *testing.T) {
	period := domain.AccountingPeriod{
		StartDate: day(2026, 3, 1),
		EndDate:   day(2026, 3, 31),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "start boundary is inclusive", date: day(2026, 3, 1), want: true},
		{name: "end boundary is inclusive", date: day(2026, 3, 31), want: true},
		{name: "mid period", date: day(2026, 3, 15), want: true},
		{name: "time of day on the end boundary is ignored", date: time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), want: true},
		{name: "day before", date: day(2026, 2, 28), want: false},
		{name: "day after", date: day(2026, 4, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Contains(tt.date))
		})
	}
}

func TestAccountingPeriod_Overlaps(t *testing.T) {
	period := domain.AccountingPeriod{
		StartDate: day(2026, 3, 1),
		EndDate:   day(2026, 3, 31),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "disjoint before", start: day(2026, 1, 1), end: day(2026, 2, 28), want: false},
		{name: "disjoint after", start: day(2026, 4, 1), end: day(2026, 4, 30), want: false},
		{name: "shared single day", start: day(2026, 3, 31), end: day(2026, 4, 30), want: true},
		{name: "fully inside", start: day(2026, 3, 10), end: day(2026, 3, 20), want: true},
		{name: "fully covering", start: day(2026, 1, 1), end: day(2026, 12, 31), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, period.Overlaps(tt.start, tt.end))
		})
	}
}
