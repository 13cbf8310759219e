package app

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bill554/plinian-allocator-service/internal/collect"
	"github.com/bill554/plinian-allocator-service/internal/discover"
	"github.com/bill554/plinian-allocator-service/internal/fetch"
	"github.com/bill554/plinian-allocator-service/internal/search"
	"github.com/bill554/plinian-allocator-service/internal/subject"
)

// Output is the complete text mapping handed to the downstream structuring
// step. Every field is always present; unreachable sources yield shorter or
// empty strings, never a missing key or an error.
type Output struct {
	AboutText     string `json:"about_text"`
	PolicyText    string `json:"policy_text"`
	ReportText    string `json:"report_text"`
	SearchContext string `json:"search_context"`
}

// App wires the discovery and collection stages for one or more subjects.
type App struct {
	cfg        Config
	provider   search.Provider
	fetcher    *fetch.Client
	httpClient *http.Client
}

// New builds an App from configuration. The search provider resolves as:
// file provider when a path is configured (offline/dev), else Serper; a
// missing API key leaves the Serper provider in place returning no results.
func New(cfg Config) *App {
	var provider search.Provider
	if cfg.SearchFile != "" {
		provider = &search.FileProvider{Path: cfg.SearchFile}
	} else {
		provider = &search.Serper{
			APIKey:    cfg.SerperAPIKey,
			Endpoint:  cfg.SerperEndpoint,
			UserAgent: cfg.UserAgent,
		}
		if cfg.SerperAPIKey == "" {
			log.Warn().Msg("no search API key configured; discovery will rely on path guessing")
		}
	}
	return &App{
		cfg:      cfg,
		provider: provider,
		fetcher: &fetch.Client{
			UserAgent:   cfg.UserAgent,
			Timeout:     cfg.FetchTimeout,
			MaxPDFBytes: cfg.MaxPDFBytes,
		},
		httpClient: &http.Client{},
	}
}

// Research runs the full pipeline for one subject: base URL resolution,
// search discovery, bucket collection, and snippet context assembly. It
// always returns a complete Output; degradation shows up as empty strings.
func (a *App) Research(ctx context.Context, sub subject.Subject) Output {
	if a.cfg.OverallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.OverallTimeout)
		defer cancel()
	}

	base := subject.ResolveBaseURL(ctx, a.httpClient, sub.BaseURL())
	if base != "" && base != sub.BaseURL() {
		log.Debug().Str("from", sub.BaseURL()).Str("to", base).Msg("base url redirect resolved")
		sub.Website = base
	}
	if base == "" {
		log.Warn().Str("subject", sub.Name).Msg("no usable base url; path guessing skipped")
	}

	disc := (&discover.Discoverer{Provider: a.provider}).Discover(ctx, sub.Name, sub.Domain)

	collector := &collect.Collector{
		Fetcher: a.fetcher,
		Params:  a.cfg.PDF,
		Limits:  a.cfg.Limits,
		Workers: a.cfg.FetchWorkers,
	}
	buckets := collector.Collect(ctx, sub, disc)

	out := Output{
		AboutText:     buckets.AboutText,
		PolicyText:    buckets.PolicyText,
		ReportText:    buckets.ReportText,
		SearchContext: strings.Join(disc.Snippets, "\n"),
	}
	log.Info().Str("subject", sub.Name).
		Int("about", len(out.AboutText)).
		Int("policy", len(out.PolicyText)).
		Int("report", len(out.ReportText)).
		Int("context", len(out.SearchContext)).
		Msg("research complete")
	return out
}

// ResearchURL fabricates a minimal subject from a bare website URL and
// collects from it directly, without search discovery. Handy for one-off
// runs where no record-store entry exists yet.
func (a *App) ResearchURL(ctx context.Context, website string) Output {
	return a.Research(ctx, subject.Subject{Website: website})
}
