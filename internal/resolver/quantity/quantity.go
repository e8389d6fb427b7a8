// Package quantity extracts an explicit quantity and target-item fragment
// from free text.
package quantity

import (
	"regexp"
	"strconv"
	"strings"
)

// Phrase is a parsed (quantity, item-fragment) pair. It lives only for the
// duration of one resolution call.
type Phrase struct {
	Quantity     int
	ItemFragment string
}

// unitNouns is the fixed set of recognized unit nouns. Matching is
// case-insensitive.
var unitNouns = []string{
	"boxes", "cases", "packs", "rolls", "bottles", "cans", "bags",
	"cartons", "containers", "units", "pieces", "sets", "pairs",
	"dozens", "sheets", "jars", "items", "packages", "bundles",
}

var (
	// "5 boxes of napkins", "2 cases paper towels"
	unitPattern = regexp.MustCompile(
		`(?i)\b(\d+)\s+(` + strings.Join(unitNouns, "|") + `)\s+(?:of\s+)?(.+)`)

	// "napkins x 5"
	suffixPattern = regexp.MustCompile(`(?i)^\s*(.+?)\s*x\s*(\d+)\s*$`)
)

// Parse recognizes two alternative phrasings, tried in order:
//
//  1. <integer> <unit-noun> [of] <item phrase>
//  2. <item phrase> x <integer>
//
// Only the first matching phrase is extracted; messages naming several
// distinct quantities keep just the first. When neither phrasing matches,
// ok is false and callers treat every suggestion's quantity as 1.
func Parse(message string) (Phrase, bool) {
	if m := unitPattern.FindStringSubmatch(message); m != nil {
		qty, err := strconv.Atoi(m[1])
		if err == nil && qty >= 1 {
			return Phrase{
				Quantity:     qty,
				ItemFragment: strings.ToLower(strings.TrimSpace(m[3])),
			}, true
		}
	}

	if m := suffixPattern.FindStringSubmatch(message); m != nil {
		qty, err := strconv.Atoi(m[2])
		if err == nil && qty >= 1 {
			return Phrase{
				Quantity:     qty,
				ItemFragment: strings.ToLower(strings.TrimSpace(m[1])),
			}, true
		}
	}

	return Phrase{}, false
}
