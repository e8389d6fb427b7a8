// Package prompt composes the fixed-contract instructions and the bounded
// message sequence sent to the generation service. Everything here is pure
// data transformation; the instruction text is a testable artifact because
// downstream parsing depends on the generator obeying it.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"catalog-assistant/internal/models"
)

// HistoryWindow is how many trailing chat messages are retained when
// building the external request.
const HistoryWindow = 10

// SystemInstructions builds the system instruction string: the serialized
// product catalog (with customer notes), the recent order history when
// non-empty, and the behavioral rulebook ending in the strict JSON-only
// response contract.
func SystemInstructions(catalog *models.CatalogContext) string {
	var parts []string

	parts = append(parts,
		"You are an ordering assistant for a wholesale supply catalog. "+
			"The customer can only order products from their own catalog, listed below.")

	catalogJSON, _ := json.MarshalIndent(catalog.Products, "", "  ")
	parts = append(parts, "\nCustomer catalog (customerNote is the customer's own annotation for that product):")
	parts = append(parts, string(catalogJSON))

	if len(catalog.OrderHistory) > 0 {
		historyJSON, _ := json.MarshalIndent(catalog.OrderHistory, "", "  ")
		parts = append(parts, "\nRecent orders, most recent first:")
		parts = append(parts, string(historyJSON))
	}

	parts = append(parts, "\nRules:")
	parts = append(parts, "- Use each product's customerNote to interpret the customer's shorthand; a note naming what they call the product outranks the catalog description.")
	parts = append(parts, `- When the customer asks for "the same as last time", "my usual", or similar, rebuild the suggestion list from the most recent order, keeping its quantities.`)
	parts = append(parts, "- When the customer repeats a past order but changes an amount, keep the prior items and apply the new quantity to the item they changed.")
	parts = append(parts, "- For category-level requests, suggest the catalog products in that category.")
	parts = append(parts, "- If the request names something not in the catalog, say so briefly in aiResponse and do not invent products.")
	parts = append(parts, fmt.Sprintf("- Suggest at most %d products; each needs id, itemNumber, description, quantity (a whole number, at least 1), category, customerNote, and confidence (one of \"high\", \"medium\", \"low\").", models.MaxSuggestedProducts))
	parts = append(parts, `- Respond with a single message containing only a JSON object with exactly two keys: "aiResponse" (a string for the customer) and "suggestedProducts" (an array, empty when nothing matches).`)
	parts = append(parts, "- No prose outside the JSON, no markdown fencing, no text before or after it. Escape double quotes inside string values.")

	return strings.Join(parts, "\n")
}

// Messages returns the role-preserving trailing HistoryWindow entries of the
// chat history followed by the current user message as the final entry.
func Messages(history []models.ChatMessage, current string) []models.ChatMessage {
	start := 0
	if len(history) > HistoryWindow {
		start = len(history) - HistoryWindow
	}

	out := make([]models.ChatMessage, 0, len(history)-start+1)
	out = append(out, history[start:]...)
	out = append(out, models.ChatMessage{
		Role:    models.RoleUser,
		Content: current,
	})
	return out
}
