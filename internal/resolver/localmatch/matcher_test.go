package localmatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalog-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func testCatalog() []models.Product {
	return []models.Product{
		{ID: "p1", ItemNumber: "NAP-100", Description: "Dinner Napkins White", Category: "Paper Goods", CustomerNote: ""},
		{ID: "p2", ItemNumber: "NAP-200", Description: "Cocktail Napkins Blue", Category: "Paper Goods", CustomerNote: "the small napkins"},
		{ID: "p3", ItemNumber: "GLV-10", Description: "Nitrile Gloves Large", Category: "Safety", CustomerNote: ""},
		{ID: "p4", ItemNumber: "CUP-12", Description: "Paper Cups 12oz", Category: "Paper Goods", CustomerNote: "coffee cups"},
		{ID: "p5", ItemNumber: "TWL-5", Description: "Paper Towels Roll", Category: "Paper Goods", CustomerNote: ""},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestSuggest_DescriptionMatch(t *testing.T) {
	suggestions := Suggest("napkins", testCatalog())

	assert.Len(t, suggestions, 2)
	assert.Equal(t, "NAP-100", suggestions[0].ItemNumber)
	assert.Equal(t, "NAP-200", suggestions[1].ItemNumber)
}

func TestSuggest_CustomerNoteWinsHighConfidence(t *testing.T) {
	suggestions := Suggest("coffee cups", testCatalog())

	var cup *models.SuggestedProduct
	for i := range suggestions {
		if suggestions[i].ItemNumber == "CUP-12" {
			cup = &suggestions[i]
		}
	}

	assert.NotNil(t, cup)
	assert.Equal(t, models.ConfidenceHigh, cup.Confidence)
}

func TestSuggest_QuantityFromPhrase(t *testing.T) {
	suggestions := Suggest("5 boxes of gloves", testCatalog())

	assert.Len(t, suggestions, 1)
	assert.Equal(t, "GLV-10", suggestions[0].ItemNumber)
	assert.Equal(t, 5, suggestions[0].Quantity)
	assert.Equal(t, models.ConfidenceHigh, suggestions[0].Confidence)
}

func TestSuggest_QuantityDefaultsToOne(t *testing.T) {
	suggestions := Suggest("gloves", testCatalog())

	assert.Len(t, suggestions, 1)
	assert.Equal(t, 1, suggestions[0].Quantity)
}

func TestSuggest_NoMatch(t *testing.T) {
	suggestions := Suggest("forklift rental", testCatalog())

	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestSuggest_ResultBound(t *testing.T) {
	products := make([]models.Product, 0, 20)
	for i := 0; i < 20; i++ {
		products = append(products, models.Product{
			ID:          fmt.Sprintf("p%d", i),
			ItemNumber:  fmt.Sprintf("NAP-%d", i),
			Description: "Dinner Napkins",
			Category:    "Paper Goods",
		})
	}

	suggestions := Suggest("napkins", products)

	assert.Len(t, suggestions, models.MaxSuggestedProducts)
	// Catalog order is preserved up to the cut.
	for i, s := range suggestions {
		assert.Equal(t, fmt.Sprintf("NAP-%d", i), s.ItemNumber)
	}
}

func TestSuggest_Deterministic(t *testing.T) {
	first := Suggest("2 packs of napkins", testCatalog())
	second := Suggest("2 packs of napkins", testCatalog())

	assert.Equal(t, first, second)
}

func TestSuggest_ShortWordsIgnored(t *testing.T) {
	// "cup" is only three characters, so it never counts toward word
	// overlap; the full-query substring check still catches it.
	suggestions := Suggest("cup", testCatalog())

	assert.Len(t, suggestions, 1)
	assert.Equal(t, "CUP-12", suggestions[0].ItemNumber)
}

func TestSuggest_ItemNumberMatchIsLowConfidence(t *testing.T) {
	suggestions := Suggest("glv-10", testCatalog())

	assert.Len(t, suggestions, 1)
	assert.Equal(t, "GLV-10", suggestions[0].ItemNumber)
	assert.Equal(t, models.ConfidenceLow, suggestions[0].Confidence)
}

func TestResolve_MentionsMatchCount(t *testing.T) {
	result := Resolve("napkins", testCatalog())

	assert.Contains(t, result.AIResponse, "2 product(s)")
	assert.Len(t, result.SuggestedProducts, 2)
}

func TestResolve_NoMatchMessage(t *testing.T) {
	result := Resolve("forklift rental", testCatalog())

	assert.Contains(t, result.AIResponse, "couldn't find")
	assert.NotNil(t, result.SuggestedProducts)
	assert.Empty(t, result.SuggestedProducts)
}

func TestResolve_EmptyCatalog(t *testing.T) {
	result := Resolve("napkins", nil)

	assert.NotEmpty(t, result.AIResponse)
	assert.NotNil(t, result.SuggestedProducts)
	assert.Empty(t, result.SuggestedProducts)
}
