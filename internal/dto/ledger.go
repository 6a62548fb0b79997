package dto

import (
	"time"

	"github.com/plcoutant/compta_engine/internal/core/domain"
)

// CreateLedgerRequest defines the payload for creating a ledger.
type CreateLedgerRequest struct {
	Name         string `json:"name" binding:"required,max=128"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
	Description  string `json:"description" binding:"max=512"`
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	LedgerID     string    `json:"ledgerID"`
	Name         string    `json:"name"`
	CurrencyCode string    `json:"currencyCode"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToLedgerResponse converts a domain.Ledger to its DTO.
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:     l.LedgerID,
		Name:         l.Name,
		CurrencyCode: l.CurrencyCode,
		Description:  l.Description,
		CreatedAt:    l.CreatedAt,
	}
}

// ToLedgerResponses converts a slice of domain.Ledger to DTOs.
func ToLedgerResponses(ledgers []domain.Ledger) []LedgerResponse {
	responses := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		responses[i] = ToLedgerResponse(&ledgers[i])
	}
	return responses
}
