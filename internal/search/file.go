package search

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
)

// FileProvider loads search results from a local JSON file for offline/testing use.
// The JSON file format is an array of objects:
// {"title": "...", "url": "...", "snippet": "...", "date": "..."}.
type FileProvider struct {
	Path string
}

func (f *FileProvider) Name() string { return "file" }

func (f *FileProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file provider path is empty")
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	var raw []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
		Date    string `json:"date"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(raw))
	for _, r := range raw {
		if r.URL == "" {
			continue
		}
		out = append(out, Result{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Snippet,
			Date:    r.Date,
			Source:  f.Name(),
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	_ = query // the static corpus answers every query identically
	return out, nil
}
