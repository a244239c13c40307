// Package grade extracts a normalized grading signal (grading company plus
// numeric grade) from free-text listing titles.
package grade

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// companyPattern pairs a grading company with the regexp that matches its
// slab notation, e.g. "PSA 10" or "BGS9.5".
type companyPattern struct {
	company domain.GradingCompany
	re      *regexp.Regexp
}

// patterns is scanned in order; the first in-range match wins regardless of
// where it appears in the title. The order is a fixed priority, not a
// frequency heuristic, so ties between companies in one title are resolved
// deterministically.
var patterns = []companyPattern{
	{domain.GradingPSA, regexp.MustCompile(`PSA\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingBGS, regexp.MustCompile(`BGS\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingCGC, regexp.MustCompile(`CGC\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingSGC, regexp.MustCompile(`SGC\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingTAG, regexp.MustCompile(`TAG\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingACE, regexp.MustCompile(`ACE\s*(\d+(?:\.\d+)?)`)},
	{domain.GradingPCA, regexp.MustCompile(`PCA\s*(\d+(?:\.\d+)?)`)},
}

// minGrade and maxGrade bound the grading scale shared by every supported
// company. Captured numbers outside this range are treated as noise (lot
// sizes, card numbers) and the scan continues with the next company.
const (
	minGrade = 1.0
	maxGrade = 10.0
)

// Parse extracts the grading company and numeric grade from a listing title.
// It returns ok=false when no company pattern yields a grade in [1, 10];
// such titles cannot be matched to a grade group and are unusable for price
// comparison.
func Parse(title string) (domain.GradingCompany, float64, bool) {
	upper := strings.ToUpper(title)
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		g, err := strconv.ParseFloat(m[1], 64)
		if err != nil || g < minGrade || g > maxGrade {
			continue
		}
		return p.company, g, true
	}
	return "", 0, false
}
