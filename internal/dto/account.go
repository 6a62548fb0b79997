package dto

import "github.com/plcoutant/compta_engine/internal/core/domain"

// AccountResponse defines the data returned for one chart-of-accounts entry.
type AccountResponse struct {
	AccountCode string `json:"accountCode"`
	Label       string `json:"label"`
	Category    string `json:"category"`
}

// ToAccountResponse converts a domain.LedgerAccount to its DTO.
func ToAccountResponse(acc *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountCode: acc.AccountCode,
		Label:       acc.Label,
		Category:    string(acc.Category),
	}
}

// ToAccountResponses converts a slice of domain.LedgerAccount to DTOs.
func ToAccountResponses(accounts []domain.LedgerAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
