package aggregate

import (
	"math"
	"testing"

	"github.com/gradehawk/gradehawk/internal/domain"
)

func listing(grade, price float64) domain.Listing {
	return domain.Listing{
		Title:     "test",
		Price:     price,
		Company:   domain.GradingPSA,
		Grade:     grade,
		DealScore: domain.DefaultDealScore,
	}
}

func TestComputeStats(t *testing.T) {
	listings := []domain.Listing{
		listing(10, 100),
		listing(10, 200),
		listing(10, 300),
		listing(9.5, 80),
	}

	stats := ComputeStats(listings)

	if len(stats) != 2 {
		t.Fatalf("expected 2 grade groups, got %d", len(stats))
	}

	ten, ok := stats["10.0"]
	if !ok {
		t.Fatal(`missing stats for grade "10.0"`)
	}
	if ten.Count != 3 {
		t.Errorf("grade 10 count = %d, want 3", ten.Count)
	}
	if math.Abs(ten.Average-200) > 1e-9 {
		t.Errorf("grade 10 average = %v, want 200", ten.Average)
	}
	if ten.Min != 100 || ten.Max != 300 {
		t.Errorf("grade 10 min/max = %v/%v, want 100/300", ten.Min, ten.Max)
	}

	half, ok := stats["9.5"]
	if !ok {
		t.Fatal(`missing stats for grade "9.5"`)
	}
	if half.Count != 1 || half.Average != 80 || half.Min != 80 || half.Max != 80 {
		t.Errorf("grade 9.5 stats = %+v, want count=1 avg=min=max=80", half)
	}
}

// Whole-number grades are keyed with an explicit decimal so the
// market_stats keys API consumers see are stable ("10.0", never "10").
func TestComputeStatsKeyFormat(t *testing.T) {
	tests := []struct {
		grade float64
		key   string
	}{
		{10, "10.0"},
		{9, "9.0"},
		{9.5, "9.5"},
		{8.5, "8.5"},
		{1, "1.0"},
	}
	for _, tt := range tests {
		stats := ComputeStats([]domain.Listing{listing(tt.grade, 100)})
		if _, ok := stats[tt.key]; !ok {
			keys := make([]string, 0, len(stats))
			for k := range stats {
				keys = append(keys, k)
			}
			t.Errorf("grade %v: no entry under %q; got keys %v", tt.grade, tt.key, keys)
		}
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if len(stats) != 0 {
		t.Errorf("expected no entries for empty input, got %d", len(stats))
	}
}

// The same multiset of listings must produce identical stats regardless of
// input order.
func TestComputeStatsOrderIndependent(t *testing.T) {
	forward := []domain.Listing{
		listing(10, 100), listing(9, 50), listing(10, 300), listing(9, 70),
	}
	reversed := []domain.Listing{
		listing(9, 70), listing(10, 300), listing(9, 50), listing(10, 100),
	}

	a := ComputeStats(forward)
	b := ComputeStats(reversed)

	if len(a) != len(b) {
		t.Fatalf("group counts differ: %d vs %d", len(a), len(b))
	}
	for key, sa := range a {
		sb, ok := b[key]
		if !ok {
			t.Fatalf("grade %q missing from reversed result", key)
		}
		if sa != sb {
			t.Errorf("grade %q stats differ: %+v vs %+v", key, sa, sb)
		}
	}
}
