// Package collect fetches a subject's candidate URLs bucket by bucket and
// aggregates the extracted text under per-bucket character budgets.
package collect

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/bill554/plinian-allocator-service/internal/discover"
	"github.com/bill554/plinian-allocator-service/internal/extract"
	"github.com/bill554/plinian-allocator-service/internal/fetch"
	"github.com/bill554/plinian-allocator-service/internal/pdftext"
	"github.com/bill554/plinian-allocator-service/internal/subject"
)

// Origin records where a candidate URL came from. Explicit record-store URLs
// outrank search hits, which outrank path guesses; PDF links lifted from
// fetched pages join the PDF queue late.
type Origin string

const (
	OriginExplicit Origin = "explicit"
	OriginSearch   Origin = "search-discovered"
	OriginGuessed  Origin = "path-guessed"
	OriginLinked   Origin = "linked-from-page"
)

// Candidate is a URL queued for one bucket with its provenance.
type Candidate struct {
	URL    string
	Origin Origin
}

// Buckets is the bounded text output of one collection run. Each field is
// within its configured character limit; empty when nothing was reachable.
type Buckets struct {
	AboutText  string
	PolicyText string
	ReportText string
}

// Limits bounds collection cost and output size.
type Limits struct {
	AboutChars  int // default 25000
	PolicyChars int // default 25000
	ReportChars int // default 50000, PDFs dominate this bucket
	// URLsPerBucket caps page fetches per bucket; PDFFetches caps how many
	// prioritized PDFs are downloaded in full.
	URLsPerBucket int // default 10
	PDFFetches    int // default 3
}

// DefaultLimits returns the reference limits.
func DefaultLimits() Limits {
	return Limits{
		AboutChars:    25000,
		PolicyChars:   25000,
		ReportChars:   50000,
		URLsPerBucket: 10,
		PDFFetches:    3,
	}
}

func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.AboutChars <= 0 {
		l.AboutChars = d.AboutChars
	}
	if l.PolicyChars <= 0 {
		l.PolicyChars = d.PolicyChars
	}
	if l.ReportChars <= 0 {
		l.ReportChars = d.ReportChars
	}
	if l.URLsPerBucket <= 0 {
		l.URLsPerBucket = d.URLsPerBucket
	}
	if l.PDFFetches <= 0 {
		l.PDFFetches = d.PDFFetches
	}
	return l
}

// Collector runs the fetch-and-aggregate stage for one subject.
type Collector struct {
	Fetcher *fetch.Client
	Params  pdftext.Params
	Limits  Limits
	// Workers bounds concurrent fetches within a bucket. 1 (or 0) keeps the
	// strictly sequential reference behavior.
	Workers int
}

// Collect fetches the about, policy, and report buckets and the prioritized
// PDF queue, and returns budget-trimmed text per bucket. Failures along the
// way shrink the output; they never abort the run.
func (c *Collector) Collect(ctx context.Context, sub subject.Subject, disc discover.Discovery) Buckets {
	limits := c.Limits.withDefaults()
	about, policy, report, pdfQueue := assembleCandidates(sub, disc)

	// URLs already queued keep their position; only genuinely new links are
	// inserted.
	queued := make(map[string]struct{}, len(pdfQueue))
	for _, cand := range pdfQueue {
		queued[cand.URL] = struct{}{}
	}
	enqueuePDF := func(u string, front bool) {
		if _, dup := queued[u]; dup {
			return
		}
		queued[u] = struct{}{}
		cand := Candidate{URL: u, Origin: OriginLinked}
		if front {
			pdfQueue = append([]Candidate{cand}, pdfQueue...)
			return
		}
		pdfQueue = append(pdfQueue, cand)
	}

	aboutTexts := c.fetchBucket(ctx, "about", about, limits.URLsPerBucket, nil)
	policyTexts := c.fetchBucket(ctx, "policy", policy, limits.URLsPerBucket, func(links []string) {
		for _, u := range links {
			enqueuePDF(u, false)
		}
	})
	reportTexts := c.fetchBucket(ctx, "report", report, limits.URLsPerBucket, func(links []string) {
		// Reports linked from report pages are the best PDF leads; push the
		// recognizable ones to the front of the queue.
		for _, u := range links {
			enqueuePDF(u, containsAny(strings.ToLower(u), "annual", "cafr", "investment", "acfr", "report"))
		}
	})

	pdfTexts := c.fetchPDFs(ctx, pdfQueue, limits.PDFFetches)

	// PDF-derived text always precedes HTML report-page text.
	allReport := append(pdfTexts, reportTexts...)

	return Buckets{
		AboutText:  TrimText(strings.Join(aboutTexts, " "), limits.AboutChars),
		PolicyText: TrimText(strings.Join(policyTexts, " "), limits.PolicyChars),
		ReportText: TrimText(strings.Join(allReport, " "), limits.ReportChars),
	}
}

// assembleCandidates builds the per-bucket candidate lists in priority order:
// explicit record-store URLs, then search-discovered ones, then the site root
// and path guesses. Lists come back deduplicated, first occurrence winning.
func assembleCandidates(sub subject.Subject, disc discover.Discovery) (about, policy, report, pdfs []Candidate) {
	if sub.InvestmentsPageURL != "" {
		policy = append(policy, Candidate{URL: sub.InvestmentsPageURL, Origin: OriginExplicit})
	}
	if sub.LatestReportURL != "" {
		if fetch.HasPDFExt(sub.LatestReportURL) {
			pdfs = append(pdfs, Candidate{URL: sub.LatestReportURL, Origin: OriginExplicit})
		} else {
			report = append(report, Candidate{URL: sub.LatestReportURL, Origin: OriginExplicit})
		}
	}

	if disc.InvestmentsURL != "" {
		policy = append(policy, Candidate{URL: disc.InvestmentsURL, Origin: OriginSearch})
	}
	if disc.AnnualReportURL != "" {
		if fetch.HasPDFExt(disc.AnnualReportURL) {
			pdfs = append(pdfs, Candidate{URL: disc.AnnualReportURL, Origin: OriginSearch})
		} else {
			report = append(report, Candidate{URL: disc.AnnualReportURL, Origin: OriginSearch})
		}
	}
	if disc.AboutURL != "" {
		about = append(about, Candidate{URL: disc.AboutURL, Origin: OriginSearch})
	}
	if disc.TeamURL != "" {
		about = append(about, Candidate{URL: disc.TeamURL, Origin: OriginSearch})
	}
	for _, u := range disc.PDFCandidates {
		pdfs = append(pdfs, Candidate{URL: u, Origin: OriginSearch})
	}

	base := sub.BaseURL()
	if base != "" {
		// The site root doubles as a general about source.
		about = append(about, Candidate{URL: base, Origin: OriginGuessed})
	}
	for _, p := range subject.AboutPaths {
		about = append(about, Candidate{URL: subject.NormalizeURL(base, p), Origin: OriginGuessed})
	}
	for _, p := range subject.InvestmentPaths {
		policy = append(policy, Candidate{URL: subject.NormalizeURL(base, p), Origin: OriginGuessed})
	}
	for _, p := range subject.PolicyPaths {
		policy = append(policy, Candidate{URL: subject.NormalizeURL(base, p), Origin: OriginGuessed})
	}
	for _, p := range subject.ReportPaths {
		report = append(report, Candidate{URL: subject.NormalizeURL(base, p), Origin: OriginGuessed})
	}

	return dedupe(about), dedupe(policy), dedupe(report), dedupe(pdfs)
}

// fetchBucket fetches up to limit candidates and returns their extracted
// texts in candidate order. When onPDFLinks is set, PDF links found on HTML
// pages are reported to it, also in candidate order.
func (c *Collector) fetchBucket(ctx context.Context, bucket string, cands []Candidate, limit int, onPDFLinks func([]string)) []string {
	if len(cands) > limit {
		cands = cands[:limit]
	}
	results := make([]fetch.Result, len(cands))

	workers := c.Workers
	if workers <= 0 {
		workers = 1
	}
	// With one worker this degenerates to the sequential reference behavior;
	// with more, results still land in index-addressed slots so candidate
	// priority order survives regardless of completion order.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cand := range cands {
		g.Go(func() error {
			results[i] = c.Fetcher.Fetch(gctx, cand.URL)
			return nil
		})
	}
	_ = g.Wait()

	var texts []string
	for i, cand := range cands {
		res := results[i]
		if !res.OK() {
			if res.Outcome != fetch.OutcomeEmpty {
				log.Debug().Str("bucket", bucket).Str("url", cand.URL).Str("outcome", string(res.Outcome)).Msg("fetch skipped")
			}
			continue
		}
		if res.IsPDF(cand.URL) {
			if text := pdftext.Extract(res.Body, c.Params); text != "" {
				texts = append(texts, text)
			}
			continue
		}
		if text := extract.FromHTML(res.Body, cand.URL); text != "" {
			texts = append(texts, text)
			log.Debug().Str("bucket", bucket).Str("url", cand.URL).Str("origin", string(cand.Origin)).Int("chars", len(text)).Msg("page collected")
		}
		if onPDFLinks != nil {
			if links := extract.PDFLinks(res.Body, cand.URL); len(links) > 0 {
				onPDFLinks(links)
			}
		}
	}
	return texts
}

// fetchPDFs prioritizes the queue and downloads only the top candidates;
// ordering is load-bearing because of the small fetch cap.
func (c *Collector) fetchPDFs(ctx context.Context, queue []Candidate, limit int) []string {
	urls := make([]string, 0, len(queue))
	for _, cand := range dedupe(queue) {
		urls = append(urls, cand.URL)
	}
	urls = pdftext.PrioritizePDFs(urls)
	if len(urls) > limit {
		urls = urls[:limit]
	}

	var texts []string
	for _, u := range urls {
		res := c.Fetcher.Fetch(ctx, u)
		if !res.OK() {
			log.Debug().Str("url", u).Str("outcome", string(res.Outcome)).Msg("pdf fetch skipped")
			continue
		}
		if text := pdftext.Extract(res.Body, c.Params); text != "" {
			texts = append(texts, text)
			log.Info().Str("url", u).Int("chars", len(text)).Msg("pdf extracted")
		}
	}
	return texts
}

func dedupe(cands []Candidate) []Candidate {
	seen := make(map[string]struct{}, len(cands))
	out := make([]Candidate, 0, len(cands))
	for _, cand := range cands {
		if cand.URL == "" {
			continue
		}
		if _, dup := seen[cand.URL]; dup {
			continue
		}
		seen[cand.URL] = struct{}{}
		out = append(out, cand)
	}
	return out
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
