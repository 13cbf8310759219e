// Package subject models the institution being researched and resolves its
// base website URL.
package subject

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Subject identifies one allocator (a pension fund, endowment, or similar)
// with whatever URLs its record already carries. All fields are optional
// except Name for search discovery to be useful.
type Subject struct {
	Name             string
	Website          string
	SecondaryWebsite string
	Domain           string
	// InvestmentsPageURL and LatestReportURL are explicit record-store links;
	// when set they outrank anything discovered by search.
	InvestmentsPageURL string
	LatestReportURL    string
}

// BaseURL derives the subject's base website URL: the primary website first,
// then the secondary, then the bare domain with https assumed. Trailing
// slashes are stripped. Returns "" when nothing is usable.
func (s Subject) BaseURL() string {
	for _, cand := range []string{s.Website, s.SecondaryWebsite} {
		cand = strings.TrimSpace(cand)
		if cand != "" {
			return strings.TrimRight(cand, "/")
		}
	}
	domain := strings.TrimSpace(s.Domain)
	if domain == "" {
		return ""
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimRight(domain, "/")
}

// resolveTimeout bounds the single probe request in ResolveBaseURL.
const resolveTimeout = 5 * time.Second

// ResolveBaseURL probes base with one HEAD request and returns the post-
// redirect origin (scheme and host), so that path guessing runs against
// wherever the site actually lives. Any failure returns base unchanged; the
// probe is best effort.
func ResolveBaseURL(ctx context.Context, client *http.Client, base string) string {
	if base == "" {
		return ""
	}
	if client == nil {
		client = &http.Client{}
	}
	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, base, nil)
	if err != nil {
		return base
	}
	resp, err := client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("base", base).Msg("base url probe failed")
		return base
	}
	defer resp.Body.Close()
	if resp.Request == nil || resp.Request.URL == nil {
		return base
	}
	final := resp.Request.URL
	if final.Scheme == "" || final.Host == "" {
		return base
	}
	return final.Scheme + "://" + final.Host
}

// NormalizeURL joins a base URL and a path. A path starting with "/" replaces
// the base's path; anything else is resolved relative to it. Returns "" when
// the base is empty or unparsable.
func NormalizeURL(base, path string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if path == "" {
		return strings.TrimRight(u.String(), "/")
	}
	if strings.HasPrefix(path, "/") {
		return strings.TrimRight(u.Scheme+"://"+u.Host, "/") + path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.ResolveReference(ref).String()
}

// UniqueURLs deduplicates preserving order: the first occurrence of each URL
// wins, empty strings are dropped.
func UniqueURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u == "" {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
