package quote

import (
	"carecalendar-api/internal/common"
)

// Quote represents a self-care message. Quotes are computed on demand
// and never persisted.
type Quote struct {
	Text     string `json:"text"`
	Category string `json:"category,omitempty"`
}

// QuoteRequest carries the parameters of a quote lookup
type QuoteRequest struct {
	Mood     string `json:"mood,omitempty"`
	Category string `json:"category,omitempty"`
}

// Known quote categories
const (
	CategorySelfCare    = "self-care"
	CategoryMotivation  = "motivation"
	CategoryMindfulness = "mindfulness"
	CategoryGratitude   = "gratitude"
)

var knownCategories = map[string]bool{
	CategorySelfCare:    true,
	CategoryMotivation:  true,
	CategoryMindfulness: true,
	CategoryGratitude:   true,
}

// Validate checks the request parameters.
// An empty category means "any"; an unknown one is malformed input.
func (r QuoteRequest) Validate() error {
	if r.Category != "" && !knownCategories[r.Category] {
		return common.ValidationError{Field: "category", Message: "unknown quote category"}
	}
	return nil
}
