// Package localmatch is the deterministic fallback matcher used whenever
// the external generation path is unavailable or exhausted. It performs no
// I/O and no randomness: identical inputs always produce identical results.
package localmatch

import (
	"fmt"
	"math"
	"strings"

	"catalog-assistant/internal/models"
	"catalog-assistant/internal/resolver/quantity"
)

// minWordLength filters noise words: only query words longer than this
// count toward overlap and confidence.
const minWordLength = 3

// Resolve searches the customer's product catalog for the free-text message
// and returns a complete, normalized result. Suggestions keep catalog order
// and are truncated to the result bound.
func Resolve(message string, products []models.Product) models.ResolutionResult {
	suggestions := Suggest(message, products)

	var response string
	if len(suggestions) > 0 {
		response = fmt.Sprintf(
			"I found %d product(s) in your catalog that match your request. Let me know if you'd like to adjust quantities or keep looking.",
			len(suggestions))
	} else {
		response = "I couldn't find any products in your catalog matching that request. Could you describe the item differently?"
	}

	result := models.ResolutionResult{
		AIResponse:        response,
		SuggestedProducts: suggestions,
	}
	result.Normalize(response)
	return result
}

// Suggest returns at most models.MaxSuggestedProducts confidence-tagged
// matches for the message, in catalog order.
func Suggest(message string, products []models.Product) []models.SuggestedProduct {
	query := strings.ToLower(strings.TrimSpace(message))
	words := significantWords(query)

	phrase, hasPhrase := quantity.Parse(message)
	qty := 1
	if hasPhrase {
		qty = phrase.Quantity
	}

	threshold := int(math.Ceil(0.4 * float64(len(words))))

	suggestions := []models.SuggestedProduct{}
	for _, p := range products {
		if len(suggestions) == models.MaxSuggestedProducts {
			break
		}

		desc := strings.ToLower(p.Description)
		itemNo := strings.ToLower(p.ItemNumber)
		category := strings.ToLower(p.Category)
		note := strings.ToLower(p.CustomerNote)

		fragmentHit := false
		if hasPhrase && phrase.ItemFragment != "" {
			fragmentHit = strings.Contains(desc, phrase.ItemFragment) ||
				strings.Contains(category, phrase.ItemFragment) ||
				strings.Contains(note, phrase.ItemFragment)
		}
		fragmentCandidate := fragmentHit ||
			(hasPhrase && phrase.ItemFragment != "" && strings.Contains(itemNo, phrase.ItemFragment))

		fullQueryHit := strings.Contains(desc, query) ||
			strings.Contains(category, query) ||
			strings.Contains(note, query)
		fullQueryCandidate := fullQueryHit || strings.Contains(itemNo, query)

		overlap := 0
		for _, w := range words {
			if strings.Contains(desc, w) || strings.Contains(category, w) || strings.Contains(note, w) {
				overlap++
			}
		}
		overlapHit := len(words) > 0 && overlap >= threshold

		if !fragmentCandidate && !fullQueryCandidate && !overlapHit {
			continue
		}

		suggestions = append(suggestions, models.SuggestedProduct{
			ID:           p.ID,
			ItemNumber:   p.ItemNumber,
			Description:  p.Description,
			Quantity:     qty,
			Category:     p.Category,
			CustomerNote: p.CustomerNote,
			Confidence:   confidenceFor(p, words, fragmentHit, fullQueryHit),
		})
	}

	return suggestions
}

// confidenceFor applies the tiered rules in priority order; the first rule
// that matches wins.
func confidenceFor(p models.Product, words []string, fragmentHit, fullQueryHit bool) models.Confidence {
	desc := strings.ToLower(p.Description)
	note := strings.ToLower(p.CustomerNote)

	if note != "" {
		for _, w := range words {
			if strings.Contains(note, w) {
				return models.ConfidenceHigh
			}
		}
	}

	if fragmentHit {
		return models.ConfidenceHigh
	}

	if fullQueryHit {
		return models.ConfidenceHigh
	}

	for _, w := range words {
		if strings.Contains(desc, w) || strings.Contains(note, w) {
			return models.ConfidenceMedium
		}
	}

	return models.ConfidenceLow
}

// significantWords splits the lower-cased query and keeps words longer than
// minWordLength characters.
func significantWords(query string) []string {
	var words []string
	for _, w := range strings.Fields(query) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) > minWordLength {
			words = append(words, w)
		}
	}
	return words
}
