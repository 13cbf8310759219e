package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultSerperEndpoint = "https://google.serper.dev/search"

// Serper implements Provider against the Serper (Google Search) JSON API.
// An empty APIKey is not an error: Search returns zero results so that a run
// without credentials degrades to path guessing instead of failing.
type Serper struct {
	APIKey     string
	Endpoint   string // optional override, used by tests
	HTTPClient *http.Client
	UserAgent  string // optional custom UA
}

func (s *Serper) Name() string { return "serper" }

func (s *Serper) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = defaultSerperEndpoint
	}

	payload, err := json.Marshal(map[string]any{"q": query, "num": limit})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}

	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("serper status: %d", resp.StatusCode)
	}
	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(sr.Organic))
	for _, r := range sr.Organic {
		if r.Link == "" {
			continue
		}
		out = append(out, Result{
			Title:   strings.TrimSpace(r.Title),
			URL:     strings.TrimSpace(r.Link),
			Snippet: strings.TrimSpace(r.Snippet),
			Date:    strings.TrimSpace(r.Date),
			Source:  s.Name(),
		})
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
	} `json:"organic"`
}
