package grade

import (
	"testing"

	"github.com/gradehawk/gradehawk/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		company domain.GradingCompany
		grade   float64
		ok      bool
	}{
		{"psa whole", "Charizard Base Set PSA 10 Holo", domain.GradingPSA, 10, true},
		{"psa no space", "Pikachu Jungle PSA9", domain.GradingPSA, 9, true},
		{"cgc half grade", "Blastoise CGC 9.5 Gem", domain.GradingCGC, 9.5, true},
		{"bgs", "Mewtwo BGS 8.5 slab", domain.GradingBGS, 8.5, true},
		{"sgc", "Venusaur SGC 10", domain.GradingSGC, 10, true},
		{"lowercase", "charizard psa 7 played", domain.GradingPSA, 7, true},
		{"grade too high", "Charizard PSA 11 error slab", "", 0, false},
		{"grade too low", "Pikachu PSA 0.5", "", 0, false},
		{"no signal", "Charizard Base Set Unlimited Holo", "", 0, false},
		{"tag", "Gyarados TAG 9 graded", domain.GradingTAG, 9, true},
		{"ace", "Alakazam ACE 10", domain.GradingACE, 10, true},
		{"pca", "Dragonite PCA 8", domain.GradingPCA, 8, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			company, g, ok := Parse(tt.title)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.title, ok, tt.ok)
			}
			if company != tt.company {
				t.Errorf("Parse(%q) company = %q, want %q", tt.title, company, tt.company)
			}
			if g != tt.grade {
				t.Errorf("Parse(%q) grade = %v, want %v", tt.title, g, tt.grade)
			}
		})
	}
}

// A title naming two companies resolves by the fixed priority order, not by
// position in the text.
func TestParsePriorityOrder(t *testing.T) {
	company, g, ok := Parse("BGS 9 crossover to PSA 10")
	if !ok {
		t.Fatal("expected a match")
	}
	if company != domain.GradingPSA || g != 10 {
		t.Errorf("got %s %v, want PSA 10 (priority order governs ties)", company, g)
	}
}

// An out-of-range capture for a higher-priority company must not mask an
// in-range capture for a lower-priority one.
func TestParseSkipsOutOfRangeAndContinues(t *testing.T) {
	company, g, ok := Parse("PSA 11 population report, card graded CGC 9")
	if !ok {
		t.Fatal("expected a match")
	}
	if company != domain.GradingCGC || g != 9 {
		t.Errorf("got %s %v, want CGC 9", company, g)
	}
}
