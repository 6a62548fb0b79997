package domain

// AccountUsage is one ranked entry of the suggestion query: how often an
// account was used for past documents with a similar label.
type AccountUsage struct {
	AccountCode string `json:"accountCode"`
	SampleLabel string `json:"sampleLabel"`
	Frequency   int    `json:"frequency"`
}
