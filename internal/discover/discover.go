// Package discover turns a subject name into candidate URLs and search
// snippets by issuing a fixed set of queries against a search provider and
// classifying the merged results.
package discover

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bill554/plinian-allocator-service/internal/search"
)

// Discovery is the classified output of one discovery run. URL slots are ""
// when no result matched; lists may be empty. Never nil-dereferences and
// never partial in shape.
type Discovery struct {
	InvestmentsURL  string
	AnnualReportURL string
	AboutURL        string
	TeamURL         string
	PDFCandidates   []string
	Snippets        []string
}

// Discoverer issues capped query batches against a provider. A nil provider
// or a provider without credentials yields an empty Discovery, not an error.
type Discoverer struct {
	Provider        search.Provider
	ResultsPerQuery int // default 5
	MaxQueries      int // default 6, bounds primary-pass provider cost
	MaxSnippets     int // default 20
	Now             func() time.Time // test seam for recency ranking
}

func (d *Discoverer) resultsPerQuery() int {
	if d.ResultsPerQuery > 0 {
		return d.ResultsPerQuery
	}
	return 5
}

func (d *Discoverer) maxQueries() int {
	if d.MaxQueries > 0 {
		return d.MaxQueries
	}
	return 6
}

func (d *Discoverer) maxSnippets() int {
	if d.MaxSnippets > 0 {
		return d.MaxSnippets
	}
	return 20
}

// primarySnippetCap bounds how many snippets the URL-discovery pass may
// contribute before the snippet-only pass runs.
const primarySnippetCap = 10

func (d *Discoverer) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Discover runs the primary query set, classifies results into URL slots and
// PDF candidates, then runs the snippet-only second pass and ranks the
// combined snippets by recency.
func (d *Discoverer) Discover(ctx context.Context, name, domain string) Discovery {
	var out Discovery
	if d.Provider == nil || strings.TrimSpace(name) == "" {
		return out
	}

	results := d.runQueries(ctx, primaryQueries(name, domain), d.maxQueries())
	classify(&out, results, name, domain)
	// The primary pass contributes at most half the snippet budget; the rest
	// is reserved for the targeted second pass.
	if len(out.Snippets) > primarySnippetCap {
		out.Snippets = out.Snippets[:primarySnippetCap]
	}

	out.Snippets = append(out.Snippets, d.enrichSnippets(ctx, name, out.Snippets)...)
	out.Snippets = RankSnippetsByRecency(out.Snippets, d.now())
	if len(out.Snippets) > d.maxSnippets() {
		out.Snippets = out.Snippets[:d.maxSnippets()]
	}

	log.Info().Str("subject", name).
		Bool("investments", out.InvestmentsURL != "").
		Bool("report", out.AnnualReportURL != "").
		Int("pdfs", len(out.PDFCandidates)).
		Int("snippets", len(out.Snippets)).
		Msg("discovery complete")
	return out
}

// primaryQueries is the fixed URL-discovery template set, ordered so earlier
// queries win slot classification ties.
func primaryQueries(name, domain string) []string {
	queries := []string{
		fmt.Sprintf("%q investments asset allocation", name),
		fmt.Sprintf("%q annual report CAFR", name),
		fmt.Sprintf("%q investment office CIO team", name),
		fmt.Sprintf("%q annual report filetype:pdf", name),
	}
	if domain != "" {
		queries = append(queries,
			"site:"+domain+" investments",
			"site:"+domain+" annual report",
			"site:"+domain+" filetype:pdf",
		)
	}
	return queries
}

// snippetQueries is the second pass: targeted queries harvested only for
// qualifying snippets, never for URLs.
func snippetQueries(name string) []string {
	return []string{
		fmt.Sprintf("%q private equity commitment million", name),
		fmt.Sprintf("%q real estate real assets allocation", name),
		fmt.Sprintf("%q consultant Verus NEPC Callan Mercer", name),
		fmt.Sprintf("%q CIO chief investment officer", name),
		fmt.Sprintf("%q co-investment coinvest", name),
		fmt.Sprintf("site:pionline.com %q", name),
		fmt.Sprintf("site:top1000funds.com %q", name),
	}
}

// runQueries executes up to cap queries and merges results, deduplicated by
// exact URL with order preserved. Provider failures are logged and skipped.
func (d *Discoverer) runQueries(ctx context.Context, queries []string, limit int) []search.Result {
	if len(queries) > limit {
		queries = queries[:limit]
	}
	seen := make(map[string]struct{})
	var merged []search.Result
	for _, q := range queries {
		results, err := d.Provider.Search(ctx, q, d.resultsPerQuery())
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("search error")
			continue
		}
		for _, r := range results {
			if r.URL == "" {
				continue
			}
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}

// classify fills the four URL slots (first keyword match wins, one result
// per slot), keeps subject-relevant PDFs, and harvests qualifying snippets.
func classify(out *Discovery, results []search.Result, name, domain string) {
	matcher := newSubjectMatcher(name, domain)
	for _, r := range results {
		urlLower := strings.ToLower(r.URL)
		titleLower := strings.ToLower(r.Title)

		if strings.HasSuffix(urlLower, ".pdf") {
			// Unrelated PDFs would pollute the report bucket; keep only
			// those that look like they are about this subject.
			if matcher.matches(urlLower, titleLower, strings.ToLower(r.Snippet)) {
				out.PDFCandidates = append(out.PDFCandidates, r.URL)
			} else {
				log.Debug().Str("url", r.URL).Msg("skipping unrelated pdf")
			}
		} else {
			if out.InvestmentsURL == "" &&
				(containsAny(urlLower, "investment", "portfolio", "asset-allocation", "assets") ||
					containsAny(titleLower, "investment", "portfolio", "asset allocation")) {
				out.InvestmentsURL = r.URL
			}
			if out.AnnualReportURL == "" &&
				(containsAny(urlLower, "annual-report", "annualreport", "cafr", "financial-report") ||
					containsAny(titleLower, "annual report", "cafr", "financial report")) {
				out.AnnualReportURL = r.URL
			}
			if out.AboutURL == "" && containsAny(urlLower, "about", "who-we-are", "our-story", "overview") {
				out.AboutURL = r.URL
			}
			if out.TeamURL == "" &&
				(containsAny(urlLower, "team", "staff", "leadership", "people", "board") ||
					containsAny(titleLower, "team", "staff", "leadership", "board of trustees")) {
				out.TeamURL = r.URL
			}
		}

		if snippetQualifies(r.Snippet) {
			out.Snippets = append(out.Snippets, tagSnippet(r))
		}
	}
}

// enrichSnippets runs the second query pass and returns new qualifying
// snippets not already collected.
func (d *Discoverer) enrichSnippets(ctx context.Context, name string, existing []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		have[s] = struct{}{}
	}
	var added []string
	for _, q := range snippetQueries(name) {
		results, err := d.Provider.Search(ctx, q, d.resultsPerQuery())
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("snippet search error")
			continue
		}
		for _, r := range results {
			if len(r.Snippet) <= 50 || !snippetQualifiesHighValue(r.Snippet) {
				continue
			}
			tagged := tagSnippet(r)
			if _, dup := have[tagged]; dup {
				continue
			}
			have[tagged] = struct{}{}
			added = append(added, tagged)
		}
	}
	return added
}

// tagSnippet prefixes the provider's date hint in brackets so the recency
// ranker can read it; content is never altered otherwise.
func tagSnippet(r search.Result) string {
	if r.Date != "" {
		return "[" + r.Date + "] " + r.Snippet
	}
	return r.Snippet
}

var snippetKeywords = []string{
	"billion", "million", "asset", "allocation", "portfolio", "aum", "cio",
	"investment", "committed", "private equity", "real estate", "hedge",
	"consultant",
}

var snippetHighValueKeywords = []string{
	"billion", "million", "committed", "allocated", "allocation",
	"private equity", "real estate", "real assets", "hedge fund",
	"cio", "chief investment", "consultant", "verus", "nepc", "callan",
	"co-invest", "coinvest", "direct investment",
}

func snippetQualifies(s string) bool {
	return s != "" && containsAny(strings.ToLower(s), snippetKeywords...)
}

func snippetQualifiesHighValue(s string) bool {
	return containsAny(strings.ToLower(s), snippetHighValueKeywords...)
}

// subjectMatcher decides whether a PDF result belongs to the subject, using
// compressed-name, per-word, and domain checks.
type subjectMatcher struct {
	nameLower  string
	compressed string
	words      []string
	domainStem string
}

func newSubjectMatcher(name, domain string) subjectMatcher {
	nameLower := strings.ToLower(name)
	m := subjectMatcher{
		nameLower:  nameLower,
		compressed: strings.NewReplacer(" ", "", "-", "", "_", "").Replace(nameLower),
	}
	for _, w := range strings.Fields(nameLower) {
		if len(w) > 2 {
			m.words = append(m.words, w)
		}
	}
	if domain != "" {
		m.domainStem = strings.ToLower(strings.Split(domain, ".")[0])
	}
	return m
}

func (m subjectMatcher) matches(urlLower, titleLower, snippetLower string) bool {
	urlCompressed := strings.NewReplacer("-", "", "_", "", "%20", "").Replace(urlLower)
	if m.compressed != "" && strings.Contains(urlCompressed, m.compressed) {
		return true
	}
	if m.nameLower != "" && (strings.Contains(titleLower, m.nameLower) || strings.Contains(snippetLower, m.nameLower)) {
		return true
	}
	if m.domainStem != "" && strings.Contains(urlLower, m.domainStem) {
		return true
	}
	for _, w := range m.words {
		if len(w) > 4 && strings.Contains(urlLower, w) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
