package app

import (
	"time"

	"github.com/bill554/plinian-allocator-service/internal/collect"
	"github.com/bill554/plinian-allocator-service/internal/pdftext"
)

// Config holds runtime configuration for the application.
type Config struct {
	// Search
	SerperAPIKey   string
	SerperEndpoint string // override for tests
	SearchFile     string // offline file provider path; takes precedence when set

	// Fetching
	UserAgent    string
	FetchTimeout time.Duration
	MaxPDFBytes  int64
	FetchWorkers int // in-bucket fetch pool size; <=1 keeps sequential behavior

	// OverallTimeout caps one subject's wall clock. Zero disables.
	OverallTimeout time.Duration

	// Extraction and budgeting
	Limits collect.Limits
	PDF    pdftext.Params

	Verbose bool
}
