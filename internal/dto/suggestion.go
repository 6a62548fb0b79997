package dto

import "github.com/plcoutant/compta_engine/internal/core/domain"

// SuggestionResponse defines one ranked account suggestion.
type SuggestionResponse struct {
	AccountCode string `json:"accountCode"`
	SampleLabel string `json:"sampleLabel"`
	Frequency   int    `json:"frequency"`
}

// ToSuggestionResponses converts a slice of domain.AccountUsage to DTOs.
func ToSuggestionResponses(usages []domain.AccountUsage) []SuggestionResponse {
	responses := make([]SuggestionResponse, len(usages))
	for i, usage := range usages {
		responses[i] = SuggestionResponse{
			AccountCode: usage.AccountCode,
			SampleLabel: usage.SampleLabel,
			Frequency:   usage.Frequency,
		}
	}
	return responses
}
