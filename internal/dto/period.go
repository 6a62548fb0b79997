package dto

import (
	"time"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// CreatePeriodRequest defines the payload for opening a new accounting period.
type CreatePeriodRequest struct {
	Name      string    `json:"name" binding:"required,max=64"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse defines the data returned for an accounting period.
type PeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	LedgerID  string    `json:"ledgerID"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPeriodResponse converts a domain.AccountingPeriod to its DTO.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		LedgerID:  p.LedgerID,
		Name:      p.Name,
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// ToPeriodResponses converts a slice of domain.AccountingPeriod to DTOs.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	responses := make([]PeriodResponse, len(periods))
	for i := range periods {
		responses[i] = ToPeriodResponse(&periods[i])
	}
	return responses
}
