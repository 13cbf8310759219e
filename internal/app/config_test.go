package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
search:
  serperKey: key-from-file
fetch:
  userAgent: allocatord/1.0
  timeout: 30s
  workers: 4
subjectTimeout: 5m
limits:
  reportChars: 60000
pdf:
  sectionLength: 35
verbose: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	fc, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if fc.Search.SerperKey != "key-from-file" {
		t.Errorf("serperKey = %q", fc.Search.SerperKey)
	}
	if time.Duration(fc.Fetch.Timeout) != 30*time.Second {
		t.Errorf("timeout = %v", fc.Fetch.Timeout)
	}
	if time.Duration(fc.SubjectTimeout) != 5*time.Minute {
		t.Errorf("subjectTimeout = %v", fc.SubjectTimeout)
	}
	if fc.Limits.ReportChars != 60000 || fc.PDF.SectionLength != 35 || !fc.Verbose {
		t.Errorf("unexpected parse: %+v", fc)
	}
}

func TestLoadConfigFile_Missing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyFileToConfig_FlagsKeepPrecedence(t *testing.T) {
	fc := &FileConfig{}
	fc.Search.SerperKey = "file-key"
	fc.Fetch.Timeout = duration(30 * time.Second)
	fc.Fetch.Workers = 8

	cfg := Config{SerperAPIKey: "flag-key"}
	ApplyFileToConfig(&cfg, fc)

	if cfg.SerperAPIKey != "flag-key" {
		t.Errorf("flag value overwritten: %q", cfg.SerperAPIKey)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.FetchWorkers != 8 {
		t.Errorf("unset fields not filled: %+v", cfg)
	}
}

func TestApplyEnvToConfig(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "env-key")
	t.Setenv("FETCH_USER_AGENT", "env-agent/2.0")
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("FETCH_WORKERS", "3")
	t.Setenv("MAX_PDF_BYTES", "1048576")

	var cfg Config
	ApplyEnvToConfig(&cfg)

	if cfg.SerperAPIKey != "env-key" {
		t.Errorf("SerperAPIKey = %q", cfg.SerperAPIKey)
	}
	if cfg.UserAgent != "env-agent/2.0" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.FetchTimeout != 45*time.Second {
		t.Errorf("FetchTimeout = %v", cfg.FetchTimeout)
	}
	if cfg.FetchWorkers != 3 || cfg.MaxPDFBytes != 1<<20 {
		t.Errorf("cfg = %+v", cfg)
	}
}

// Overlays applied in main's order: flags, then env, then file. A field set
// in both env and file keeps the env value; the file fills what is left.
func TestOverlayPrecedence_EnvBeatsFile(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "45s")
	t.Setenv("FETCH_USER_AGENT", "")
	t.Setenv("SERPER_API_KEY", "")
	t.Setenv("SEARCH_API_KEY", "")

	fc := &FileConfig{}
	fc.Search.SerperKey = "file-key"
	fc.Fetch.Timeout = duration(30 * time.Second)
	fc.Fetch.UserAgent = "file-agent/1.0"

	var cfg Config
	ApplyEnvToConfig(&cfg)
	ApplyFileToConfig(&cfg, fc)

	if cfg.FetchTimeout != 45*time.Second {
		t.Errorf("env timeout must beat file: got %v", cfg.FetchTimeout)
	}
	if cfg.SerperAPIKey != "file-key" || cfg.UserAgent != "file-agent/1.0" {
		t.Errorf("file should fill unset fields: %+v", cfg)
	}
}

func TestApplyEnvToConfig_LegacyKeyName(t *testing.T) {
	t.Setenv("SERPER_API_KEY", "")
	t.Setenv("SEARCH_API_KEY", "legacy-key")

	var cfg Config
	ApplyEnvToConfig(&cfg)
	if cfg.SerperAPIKey != "legacy-key" {
		t.Errorf("SerperAPIKey = %q", cfg.SerperAPIKey)
	}
}
