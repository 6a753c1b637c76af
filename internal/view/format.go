package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/dgallion1/gymscore/internal/results"
)

// MetaSeparator joins the parts of a competition's metadata line.
const MetaSeparator = " • "

// FormatScore renders a score with exactly three decimals, or "" when unset.
func FormatScore(s results.Score) string {
	if !s.Valid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', 3, 64)
}

// MetaLine joins the non-blank parts with MetaSeparator. Blank parts are
// dropped entirely so no separator is left dangling.
func MetaLine(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, MetaSeparator)
}
