// Package recovery parses the generation service's raw text into the
// structured result, degrading gracefully when the generator violates the
// JSON-only contract. The chain never fails: it always returns a valid
// result.
package recovery

import (
	"encoding/json"
	"regexp"
	"strings"

	"catalog-assistant/internal/models"
)

// GenericApology is the response of last resort.
const GenericApology = "I'm having trouble understanding your order right now. Please try again in a moment."

// rawTextLimit bounds how much unparseable generator text is echoed back
// verbatim before the generic apology takes over.
const rawTextLimit = 300

// Tier labels identify which recovery step produced the result.
const (
	TierRegex     = "regex"
	TierBraceScan = "brace_scan"
	TierSalvage   = "salvage"
	TierExhausted = "exhausted"
)

// objectPattern matches a JSON-object-shaped substring allowing up to two
// levels of nested braces.
var objectPattern = regexp.MustCompile(`\{(?:[^{}]|\{(?:[^{}]|\{[^{}]*\})*\})*\}`)

// fieldPattern salvages just the aiResponse string value.
var fieldPattern = regexp.MustCompile(`"aiResponse"\s*:\s*"((?:[^"\\]|\\.)*)"`)

type attempt struct {
	tier string
	run  func(raw string) (models.ResolutionResult, bool)
}

// chain is the ordered list of parse attempts; each is tried only if the
// previous one failed to produce a parseable result.
var chain = []attempt{
	{TierRegex, extractByRegex},
	{TierBraceScan, extractByBraceScan},
	{TierSalvage, salvageField},
}

// Recover turns raw generated text into a normalized ResolutionResult and
// reports the tier that produced it (TierExhausted when every attempt
// failed and the generic apology was substituted).
func Recover(raw string) (models.ResolutionResult, string) {
	for _, a := range chain {
		if result, ok := a.run(raw); ok {
			result.Normalize(GenericApology)
			return result, a.tier
		}
	}

	result := models.ResolutionResult{
		AIResponse:        GenericApology,
		SuggestedProducts: []models.SuggestedProduct{},
	}
	if trimmed := strings.TrimSpace(raw); trimmed != "" && len(trimmed) < rawTextLimit {
		// Short non-JSON replies are usually a direct answer the
		// generator refused to wrap; pass them through.
		result.AIResponse = trimmed
	}
	return result, TierExhausted
}

// extractByRegex matches the first JSON-object-shaped substring (bounded
// nesting) and parses it.
func extractByRegex(raw string) (models.ResolutionResult, bool) {
	candidate := objectPattern.FindString(raw)
	if candidate == "" {
		return models.ResolutionResult{}, false
	}
	return parseResult(candidate)
}

// extractByBraceScan walks forward from the first opening brace, tracking
// nesting depth, and parses the substring where depth returns to zero. This
// recovers deeper nesting than the bounded regex can.
func extractByBraceScan(raw string) (models.ResolutionResult, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return models.ResolutionResult{}, false
	}

	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return parseResult(raw[start : i+1])
			}
		}
	}

	return models.ResolutionResult{}, false
}

// salvageField extracts just the aiResponse string value and pairs it with
// an empty suggestion list.
func salvageField(raw string) (models.ResolutionResult, bool) {
	m := fieldPattern.FindStringSubmatch(raw)
	if m == nil {
		return models.ResolutionResult{}, false
	}

	text := strings.ReplaceAll(m[1], `\"`, `"`)
	text = strings.ReplaceAll(text, `\\`, `\`)
	if text == "" {
		return models.ResolutionResult{}, false
	}

	return models.ResolutionResult{
		AIResponse:        text,
		SuggestedProducts: []models.SuggestedProduct{},
	}, true
}

func parseResult(candidate string) (models.ResolutionResult, bool) {
	var result models.ResolutionResult
	if err := json.Unmarshal([]byte(candidate), &result); err != nil {
		return models.ResolutionResult{}, false
	}
	if result.AIResponse == "" {
		return models.ResolutionResult{}, false
	}
	return result, true
}
