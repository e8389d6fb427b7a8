package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    ResolutionResult
		validate func(t *testing.T, r ResolutionResult)
	}{
		{
			name:  "empty response gets fallback",
			input: ResolutionResult{},
			validate: func(t *testing.T, r ResolutionResult) {
				assert.Equal(t, "fallback text", r.AIResponse)
			},
		},
		{
			name:  "nil suggestions become empty slice",
			input: ResolutionResult{AIResponse: "hi"},
			validate: func(t *testing.T, r ResolutionResult) {
				assert.NotNil(t, r.SuggestedProducts)
				assert.Empty(t, r.SuggestedProducts)
			},
		},
		{
			name: "oversized list truncated",
			input: ResolutionResult{
				AIResponse:        "hi",
				SuggestedProducts: make([]SuggestedProduct, MaxSuggestedProducts+5),
			},
			validate: func(t *testing.T, r ResolutionResult) {
				assert.Len(t, r.SuggestedProducts, MaxSuggestedProducts)
			},
		},
		{
			name: "quantities raised to one",
			input: ResolutionResult{
				AIResponse: "hi",
				SuggestedProducts: []SuggestedProduct{
					{Quantity: 0, Confidence: ConfidenceHigh},
					{Quantity: -2, Confidence: ConfidenceMedium},
					{Quantity: 3, Confidence: ConfidenceLow},
				},
			},
			validate: func(t *testing.T, r ResolutionResult) {
				assert.Equal(t, 1, r.SuggestedProducts[0].Quantity)
				assert.Equal(t, 1, r.SuggestedProducts[1].Quantity)
				assert.Equal(t, 3, r.SuggestedProducts[2].Quantity)
			},
		},
		{
			name: "unknown confidence becomes low",
			input: ResolutionResult{
				AIResponse: "hi",
				SuggestedProducts: []SuggestedProduct{
					{Quantity: 1, Confidence: "certain"},
					{Quantity: 1, Confidence: ""},
					{Quantity: 1, Confidence: ConfidenceHigh},
				},
			},
			validate: func(t *testing.T, r ResolutionResult) {
				assert.Equal(t, ConfidenceLow, r.SuggestedProducts[0].Confidence)
				assert.Equal(t, ConfidenceLow, r.SuggestedProducts[1].Confidence)
				assert.Equal(t, ConfidenceHigh, r.SuggestedProducts[2].Confidence)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.Normalize("fallback text")
			tt.validate(t, tt.input)
		})
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("user")
	assert.NoError(t, err)
	assert.Equal(t, RoleUser, role)

	role, err = ParseRole("assistant")
	assert.NoError(t, err)
	assert.Equal(t, RoleAssistant, role)

	_, err = ParseRole("system")
	assert.Error(t, err)
}
