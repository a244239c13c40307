package ebay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchGradedAugmentsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemSummaries":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", "EBAY_US", 50, time.Second)
	if _, err := c.SearchGraded(context.Background(), "charizard"); err != nil {
		t.Fatalf("search: %v", err)
	}

	want := "charizard graded pokemon card"
	if gotQuery != want {
		t.Errorf("q = %q, want %q", gotQuery, want)
	}
}

func TestSearchGradedKeepsOnlyGradedListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"itemSummaries":[
			{"title":"Charizard PSA 10 Base Set","price":{"value":"500.00","currency":"USD"},"itemWebUrl":"https://ebay.com/1"},
			{"title":"Charizard raw near mint","price":{"value":"40.00","currency":"USD"},"itemWebUrl":"https://ebay.com/2"},
			{"title":"Charizard BGS 9.5","price":{"value":"0","currency":"USD"},"itemWebUrl":"https://ebay.com/3"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token", "", 0, 0)
	listings, err := c.SearchGraded(context.Background(), "charizard")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(listings) != 1 {
		t.Fatalf("expected 1 usable listing, got %d", len(listings))
	}
	l := listings[0]
	if l.Company != "PSA" || l.Grade != 10 || l.Price != 500 {
		t.Errorf("unexpected listing: %+v", l)
	}
	if l.Source != "ebay" {
		t.Errorf("source = %q, want ebay", l.Source)
	}
}

func TestBuildQueryTrimsInput(t *testing.T) {
	if got := buildQuery("  pikachu  "); got != "pikachu graded pokemon card" {
		t.Errorf("buildQuery = %q", got)
	}
}
