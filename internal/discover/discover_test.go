package discover

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bill554/plinian-allocator-service/internal/search"
)

// fakeProvider returns a canned result set for every query and records how
// many queries were issued.
type fakeProvider struct {
	results []search.Result
	queries []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	f.queries = append(f.queries, query)
	if len(f.queries) > 1 {
		// Only the first query yields hits; later ones are empty so the
		// dedup path is exercised without duplicate classification.
		return nil, nil
	}
	return f.results, nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestDiscover_ClassifiesSlotsFirstMatchWins(t *testing.T) {
	p := &fakeProvider{results: []search.Result{
		{Title: "Investments", URL: "https://fund.example.gov/investments", Snippet: "asset allocation of the portfolio"},
		{Title: "Later investments page", URL: "https://fund.example.gov/investment-program"},
		{Title: "Annual Report", URL: "https://fund.example.gov/annual-report"},
		{Title: "About", URL: "https://fund.example.gov/about"},
		{Title: "Our Team", URL: "https://fund.example.gov/team"},
	}}
	d := &Discoverer{Provider: p, Now: fixedNow}
	out := d.Discover(context.Background(), "Example Fund", "example.gov")

	if out.InvestmentsURL != "https://fund.example.gov/investments" {
		t.Fatalf("first matching result must win the slot, got %q", out.InvestmentsURL)
	}
	if out.AnnualReportURL != "https://fund.example.gov/annual-report" {
		t.Fatalf("annual report slot: %q", out.AnnualReportURL)
	}
	if out.AboutURL != "https://fund.example.gov/about" {
		t.Fatalf("about slot: %q", out.AboutURL)
	}
	if out.TeamURL != "https://fund.example.gov/team" {
		t.Fatalf("team slot: %q", out.TeamURL)
	}
}

func TestDiscover_PDFRelevanceFilter(t *testing.T) {
	p := &fakeProvider{results: []search.Result{
		{Title: "Example Fund CAFR", URL: "https://docs.example.gov/example-fund-cafr-2024.pdf"},
		{Title: "Somebody else's report", URL: "https://other.town.gov/unrelated-2024.pdf", Snippet: "a different pension"},
		{Title: "Mentions subject", URL: "https://news.example.com/writeup.pdf", Snippet: "Example Fund committed $40 million"},
	}}
	d := &Discoverer{Provider: p, Now: fixedNow}
	out := d.Discover(context.Background(), "Example Fund", "")

	if len(out.PDFCandidates) != 2 {
		t.Fatalf("expected 2 relevant pdfs, got %v", out.PDFCandidates)
	}
	for _, u := range out.PDFCandidates {
		if strings.Contains(u, "unrelated") {
			t.Fatalf("unrelated pdf must be filtered: %v", out.PDFCandidates)
		}
	}
}

func TestDiscover_SnippetHarvestAndDateTag(t *testing.T) {
	p := &fakeProvider{results: []search.Result{
		{Title: "News", URL: "https://news.example.com/a", Snippet: "fund allocated $2 billion to private equity", Date: "3 days ago"},
		{Title: "Recipes", URL: "https://news.example.com/b", Snippet: "how to bake bread"},
	}}
	d := &Discoverer{Provider: p, Now: fixedNow}
	out := d.Discover(context.Background(), "Example Fund", "")

	if len(out.Snippets) != 1 {
		t.Fatalf("only financial snippets qualify, got %v", out.Snippets)
	}
	if !strings.HasPrefix(out.Snippets[0], "[3 days ago] ") {
		t.Fatalf("date tag missing: %q", out.Snippets[0])
	}
}

func TestDiscover_QueryCapAndDomainVariants(t *testing.T) {
	p := &fakeProvider{}
	d := &Discoverer{Provider: p, MaxQueries: 6, Now: fixedNow}
	d.Discover(context.Background(), "Example Fund", "example.gov")

	// 6 primary (capped from 7) + 7 snippet-pass queries.
	if len(p.queries) != 13 {
		t.Fatalf("expected 13 queries, got %d: %v", len(p.queries), p.queries)
	}
	if !strings.Contains(p.queries[4], "site:example.gov") {
		t.Fatalf("expected site: variant, got %q", p.queries[4])
	}
}

func TestDiscover_PrimarySnippetsCappedAtTen(t *testing.T) {
	var results []search.Result
	for i := 1; i <= 12; i++ {
		results = append(results, search.Result{
			Title:   fmt.Sprintf("News %d", i),
			URL:     fmt.Sprintf("https://news.example.com/item-%02d", i),
			Snippet: fmt.Sprintf("allocation update %02d", i),
		})
	}
	p := &fakeProvider{results: results}
	d := &Discoverer{Provider: p, Now: fixedNow}
	out := d.Discover(context.Background(), "Example Fund", "")

	if len(out.Snippets) != 10 {
		t.Fatalf("primary pass must contribute at most 10 snippets, got %d", len(out.Snippets))
	}
	for _, s := range out.Snippets {
		if strings.Contains(s, "11") || strings.Contains(s, "12") {
			t.Fatalf("snippet past the cap survived: %q", s)
		}
	}
}

func TestDiscover_NilProviderYieldsEmpty(t *testing.T) {
	d := &Discoverer{Now: fixedNow}
	out := d.Discover(context.Background(), "Example Fund", "")
	if out.InvestmentsURL != "" || len(out.PDFCandidates) != 0 || len(out.Snippets) != 0 {
		t.Fatalf("expected empty discovery, got %+v", out)
	}
}
