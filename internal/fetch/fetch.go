package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Outcome is the terminal state of one fetch. Every fetch resolves to exactly
// one outcome; transport errors never propagate past this package.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeEmpty        Outcome = "empty"
	OutcomeTooLarge     Outcome = "too-large"
	OutcomeNetworkError Outcome = "network-error"
	OutcomeBadStatus    Outcome = "bad-status"
)

// Result carries the payload of a completed fetch together with its outcome.
type Result struct {
	ContentType string
	Body        []byte
	Outcome     Outcome
}

// OK reports whether the fetch produced a usable body.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }

// IsPDF sniffs whether the result should go through PDF extraction, by the
// declared content type or the URL suffix.
func (r Result) IsPDF(rawURL string) bool {
	if strings.Contains(strings.ToLower(r.ContentType), "pdf") {
		return true
	}
	return HasPDFExt(rawURL)
}

// HasPDFExt reports whether the URL path ends in .pdf, ignoring case.
func HasPDFExt(rawURL string) bool {
	return strings.HasSuffix(strings.ToLower(strings.TrimSpace(rawURL)), ".pdf")
}

// Client wraps http.Client with redirect caps, a per-request timeout, and a
// size guard for PDF downloads. The zero value is usable with defaults.
type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds each request. Zero means 20s.
	Timeout time.Duration
	// MaxPDFBytes caps PDF downloads. A HEAD probe that declares more than
	// this returns too-large without a body download. Zero means 50 MiB.
	MaxPDFBytes int64
	// RedirectMaxHops caps redirect following to avoid loops. Zero means 5.
	RedirectMaxHops int
}

const (
	defaultTimeout     = 20 * time.Second
	defaultMaxPDFBytes = 50 << 20
)

func (c *Client) maxPDFBytes() int64 {
	if c.MaxPDFBytes > 0 {
		return c.MaxPDFBytes
	}
	return defaultMaxPDFBytes
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return defaultTimeout
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{CheckRedirect: c.checkRedirectFunc()}
}

// Fetch retrieves a URL and funnels every failure mode into a typed outcome.
// PDF URLs get a lightweight HEAD size probe first; a declared size over the
// cap skips the body download entirely. A HEAD failure is ignored and the GET
// proceeds, since many servers mishandle HEAD.
func (c *Client) Fetch(ctx context.Context, rawURL string) Result {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Result{Outcome: OutcomeEmpty}
	}
	u, err := url.Parse(rawURL)
	if err != nil || !isHTTPScheme(u) {
		return Result{Outcome: OutcomeNetworkError}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()
	hc := c.httpClient()

	if HasPDFExt(rawURL) {
		if size, ok := c.probeSize(ctx, hc, rawURL); ok && size > c.maxPDFBytes() {
			log.Warn().Str("url", rawURL).Int64("bytes", size).Msg("pdf over size cap; skipping download")
			return Result{Outcome: OutcomeTooLarge}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{Outcome: OutcomeNetworkError}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := hc.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", rawURL).Msg("fetch failed")
		return Result{Outcome: OutcomeNetworkError}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{Outcome: OutcomeBadStatus}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	isPDF := strings.Contains(contentType, "pdf") || HasPDFExt(rawURL)

	// Observed-size guard for PDFs whose HEAD lied or was skipped.
	limit := c.maxPDFBytes()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		log.Debug().Err(err).Str("url", rawURL).Msg("read body failed")
		return Result{Outcome: OutcomeNetworkError}
	}
	if isPDF && int64(len(body)) > limit {
		return Result{Outcome: OutcomeTooLarge}
	}
	if len(body) == 0 {
		return Result{ContentType: contentType, Outcome: OutcomeEmpty}
	}
	return Result{ContentType: contentType, Body: body, Outcome: OutcomeOK}
}

// probeSize issues a HEAD request and returns the declared content length.
// ok is false when the probe failed or the server did not declare a size.
func (c *Client) probeSize(ctx context.Context, hc *http.Client, rawURL string) (int64, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return 0, false
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := hc.Do(req)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, false
	}
	cl := resp.Header.Get("Content-Length")
	if cl == "" {
		return 0, false
	}
	size, err := strconv.ParseInt(cl, 10, 64)
	if err != nil || size <= 0 {
		return 0, false
	}
	return size, true
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 5
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if req.URL == nil || !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
