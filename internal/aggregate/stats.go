package aggregate

import (
	"strconv"
	"strings"

	"github.com/gradehawk/gradehawk/internal/domain"
)

// gradeKey renders a numeric grade as a market_stats map key. Whole-number
// grades carry an explicit decimal ("10.0"), which is the key form API
// consumers already depend on; fractional grades keep their shortest form
// ("9.5").
func gradeKey(g float64) string {
	s := strconv.FormatFloat(g, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ComputeStats groups listings by numeric grade and returns per-grade price
// statistics keyed by the grade's string form ("10.0", "9.5"). Grades with
// no listings have no entry. The result depends only on the multiset of
// (grade, price) pairs, never on input order.
func ComputeStats(listings []domain.Listing) map[string]domain.GradeStats {
	type acc struct {
		sum   float64
		min   float64
		max   float64
		count int
	}
	byGrade := make(map[float64]*acc)

	for i := range listings {
		l := &listings[i]
		a, ok := byGrade[l.Grade]
		if !ok {
			a = &acc{min: l.Price, max: l.Price}
			byGrade[l.Grade] = a
		}
		a.sum += l.Price
		a.count++
		if l.Price < a.min {
			a.min = l.Price
		}
		if l.Price > a.max {
			a.max = l.Price
		}
	}

	stats := make(map[string]domain.GradeStats, len(byGrade))
	for g, a := range byGrade {
		stats[gradeKey(g)] = domain.GradeStats{
			Average: a.sum / float64(a.count),
			Min:     a.min,
			Max:     a.max,
			Count:   a.count,
		}
	}
	return stats
}
