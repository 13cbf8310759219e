package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment variables.
// Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.SerperAPIKey == "" {
		// SEARCH_API_KEY is the legacy name; prefer SERPER_API_KEY if set.
		v := os.Getenv("SERPER_API_KEY")
		if v == "" {
			v = os.Getenv("SEARCH_API_KEY")
		}
		cfg.SerperAPIKey = v
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = os.Getenv("SEARCH_FILE")
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = os.Getenv("FETCH_USER_AGENT")
	}

	if cfg.FetchTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("FETCH_TIMEOUT")); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if cfg.OverallTimeout == 0 {
		if d, err := time.ParseDuration(os.Getenv("SUBJECT_TIMEOUT")); err == nil && d > 0 {
			cfg.OverallTimeout = d
		}
	}
	if cfg.MaxPDFBytes == 0 {
		if n, err := strconv.ParseInt(os.Getenv("MAX_PDF_BYTES"), 10, 64); err == nil && n > 0 {
			cfg.MaxPDFBytes = n
		}
	}
	if cfg.FetchWorkers == 0 {
		if n, err := strconv.Atoi(os.Getenv("FETCH_WORKERS")); err == nil && n > 0 {
			cfg.FetchWorkers = n
		}
	}
	if !cfg.Verbose && strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		cfg.Verbose = true
	}
}
