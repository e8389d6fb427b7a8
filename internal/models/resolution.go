package models

// Confidence expresses how certain a suggestion is.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// MaxSuggestedProducts bounds every suggestion list, regardless of which
// pipeline produced it.
const MaxSuggestedProducts = 8

// SuggestedProduct is one product proposed to the customer.
type SuggestedProduct struct {
	ID           string     `json:"id"`
	ItemNumber   string     `json:"itemNumber"`
	Description  string     `json:"description"`
	Quantity     int        `json:"quantity"`
	Category     string     `json:"category"`
	CustomerNote string     `json:"customerNote"`
	Confidence   Confidence `json:"confidence"`
}

// ResolutionResult is the reply returned to the customer. It is the single
// shape every pipeline (generation, local matcher, apology) converges on.
type ResolutionResult struct {
	AIResponse        string             `json:"aiResponse"`
	SuggestedProducts []SuggestedProduct `json:"suggestedProducts"`
}

// Normalize enforces the result invariants in place: a non-empty response
// text (substituting fallback when blank), a non-nil suggestion list capped
// at MaxSuggestedProducts, quantities of at least 1, and a recognized
// confidence value on every suggestion.
func (r *ResolutionResult) Normalize(fallback string) {
	if r.AIResponse == "" {
		r.AIResponse = fallback
	}

	if r.SuggestedProducts == nil {
		r.SuggestedProducts = []SuggestedProduct{}
	}
	if len(r.SuggestedProducts) > MaxSuggestedProducts {
		r.SuggestedProducts = r.SuggestedProducts[:MaxSuggestedProducts]
	}

	for i := range r.SuggestedProducts {
		if r.SuggestedProducts[i].Quantity < 1 {
			r.SuggestedProducts[i].Quantity = 1
		}
		switch r.SuggestedProducts[i].Confidence {
		case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		default:
			r.SuggestedProducts[i].Confidence = ConfidenceLow
		}
	}
}
