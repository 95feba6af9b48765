package entity

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "BAJA"
	UrgencyMedium   UrgencyLevel = "MEDIA"
	UrgencyHigh     UrgencyLevel = "ALTA"
	UrgencyCritical UrgencyLevel = "CRÍTICA"
)

func UrgencyLevels() []string {
	return []string{string(UrgencyLow), string(UrgencyMedium), string(UrgencyHigh), string(UrgencyCritical)}
}

func (u UrgencyLevel) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// IsHigh reports ALTA or CRÍTICA, the levels that always notify the firm.
func (u UrgencyLevel) IsHigh() bool {
	return u == UrgencyHigh || u == UrgencyCritical
}

type LeadSummary struct {
	ClientName        string       `json:"clientName"`
	ContactInfo       string       `json:"contactInfo"`
	LegalCategory     string       `json:"legalCategory"`
	CaseSummary       string       `json:"caseSummary"`
	UrgencyLevel      UrgencyLevel `json:"urgencyLevel"`
	RecommendedAction string       `json:"recommendedAction"`
}

// Complete reports whether every field carries a value and urgency is a known level.
func (l LeadSummary) Complete() bool {
	return l.ClientName != "" &&
		l.ContactInfo != "" &&
		l.LegalCategory != "" &&
		l.CaseSummary != "" &&
		l.RecommendedAction != "" &&
		l.UrgencyLevel.Valid()
}
