package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSerper_ParsesOrganicResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-API-KEY") != "k" {
			t.Errorf("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic":[
			{"title":"Fund Investments","link":"https://fund.example.gov/investments","snippet":"asset allocation targets","date":"3 days ago"},
			{"title":"no link","snippet":"dropped"}
		]}`))
	}))
	defer srv.Close()

	s := &Serper{APIKey: "k", Endpoint: srv.URL}
	results, err := s.Search(context.Background(), "fund investments", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.URL != "https://fund.example.gov/investments" || r.Date != "3 days ago" || r.Source != "serper" {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestSerper_NoKeyDegradesToEmpty(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	s := &Serper{Endpoint: srv.URL}
	results, err := s.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("missing credentials must not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if called {
		t.Fatalf("no request should be issued without a key")
	}
}

func TestSerper_BadStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	s := &Serper{APIKey: "k", Endpoint: srv.URL}
	if _, err := s.Search(context.Background(), "q", 5); err == nil {
		t.Fatalf("expected error on 500")
	}
}
