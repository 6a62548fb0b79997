package domain

// Classification is the outcome of classifying a source document's text.
// Matched is false when no kind rule or taxonomy keyword applied and the
// defaults were used; classification itself never fails.
type Classification struct {
	DebitAccount   string      `json:"debitAccount"`
	CreditAccount  string      `json:"creditAccount"`
	JournalCode    JournalCode `json:"journalCode"`
	Matched        bool        `json:"matched"`
	MatchedKeyword string      `json:"matchedKeyword,omitempty"`
}
