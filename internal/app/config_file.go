package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// duration accepts Go duration strings ("30s", "5m") in YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

// FileConfig represents the single-file configuration schema. Nested sections
// mirror the flag groups and map onto Config.
type FileConfig struct {
	Search struct {
		SerperKey string `yaml:"serperKey"`
		File      string `yaml:"file"`
	} `yaml:"search"`

	Fetch struct {
		UserAgent   string   `yaml:"userAgent"`
		Timeout     duration `yaml:"timeout"`
		MaxPDFBytes int64    `yaml:"maxPDFBytes"`
		Workers     int      `yaml:"workers"`
	} `yaml:"fetch"`

	SubjectTimeout duration `yaml:"subjectTimeout"`

	Limits struct {
		AboutChars    int `yaml:"aboutChars"`
		PolicyChars   int `yaml:"policyChars"`
		ReportChars   int `yaml:"reportChars"`
		URLsPerBucket int `yaml:"urlsPerBucket"`
		PDFFetches    int `yaml:"pdfFetches"`
	} `yaml:"limits"`

	PDF struct {
		TOCPageOffset int `yaml:"tocPageOffset"`
		SectionLength int `yaml:"sectionLength"`
		MaxPages      int `yaml:"maxPages"`
	} `yaml:"pdf"`

	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads and parses a YAML config file.
func LoadConfigFile(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, err
	}
	var fc FileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFileToConfig fills unset Config fields from a parsed file. Flags and
// env keep precedence; the file supplies defaults.
func ApplyFileToConfig(cfg *Config, fc *FileConfig) {
	if cfg == nil || fc == nil {
		return
	}
	if cfg.SerperAPIKey == "" {
		cfg.SerperAPIKey = fc.Search.SerperKey
	}
	if cfg.SearchFile == "" {
		cfg.SearchFile = fc.Search.File
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = time.Duration(fc.Fetch.Timeout)
	}
	if cfg.MaxPDFBytes == 0 {
		cfg.MaxPDFBytes = fc.Fetch.MaxPDFBytes
	}
	if cfg.FetchWorkers == 0 {
		cfg.FetchWorkers = fc.Fetch.Workers
	}
	if cfg.OverallTimeout == 0 {
		cfg.OverallTimeout = time.Duration(fc.SubjectTimeout)
	}
	if cfg.Limits.AboutChars == 0 {
		cfg.Limits.AboutChars = fc.Limits.AboutChars
	}
	if cfg.Limits.PolicyChars == 0 {
		cfg.Limits.PolicyChars = fc.Limits.PolicyChars
	}
	if cfg.Limits.ReportChars == 0 {
		cfg.Limits.ReportChars = fc.Limits.ReportChars
	}
	if cfg.Limits.URLsPerBucket == 0 {
		cfg.Limits.URLsPerBucket = fc.Limits.URLsPerBucket
	}
	if cfg.Limits.PDFFetches == 0 {
		cfg.Limits.PDFFetches = fc.Limits.PDFFetches
	}
	if cfg.PDF.TOCPageOffset == 0 {
		cfg.PDF.TOCPageOffset = fc.PDF.TOCPageOffset
	}
	if cfg.PDF.SectionLength == 0 {
		cfg.PDF.SectionLength = fc.PDF.SectionLength
	}
	if cfg.PDF.MaxPages == 0 {
		cfg.PDF.MaxPages = fc.PDF.MaxPages
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
