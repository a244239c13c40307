package scrape

import (
	"regexp"
	"strconv"
	"strings"
)

// moneyPattern matches the first dollar amount in a text fragment, with or
// without thousands separators, e.g. "$1,234.56" or "$89".
var moneyPattern = regexp.MustCompile(`\$\s*([\d,]+(?:\.\d{1,2})?)`)

// parseMoney extracts the first USD amount from raw scraped text. ok is
// false when no positive amount is present.
func parseMoney(text string) (float64, bool) {
	m := moneyPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
