package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bill554/plinian-allocator-service/internal/app"
	"github.com/bill554/plinian-allocator-service/internal/subject"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Local runs keep credentials in a .env file; absence is fine.
	_ = godotenv.Load()

	var (
		name           string
		website        string
		domain         string
		investmentsURL string
		reportURL      string
		serperKey      string
		searchFile     string
		userAgent      string
		fetchTimeout   time.Duration
		subjectTimeout time.Duration
		maxPDFMB       int64
		workers        int
		configPath     string
		outPath        string
		verbose        bool
	)

	flag.StringVar(&name, "name", "", "Subject organization name")
	flag.StringVar(&website, "website", "", "Subject primary website URL")
	flag.StringVar(&domain, "domain", "", "Subject domain, used for site: queries and PDF relevance")
	flag.StringVar(&investmentsURL, "investments.url", "", "Known investments page URL")
	flag.StringVar(&reportURL, "report.url", "", "Known latest report URL (HTML or PDF)")
	flag.StringVar(&serperKey, "serper.key", os.Getenv("SERPER_API_KEY"), "Serper API key; empty disables search discovery")
	flag.StringVar(&searchFile, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for offline file-based search provider")
	flag.StringVar(&userAgent, "fetch.ua", "", "User-Agent for outbound requests (default plinian-allocator-service/1.0)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-request timeout (default 20s)")
	flag.DurationVar(&subjectTimeout, "subject.timeout", 0, "Overall wall-clock budget per subject; 0 disables")
	flag.Int64Var(&maxPDFMB, "pdf.maxMB", 0, "PDF size cap in MiB (default 50)")
	flag.IntVar(&workers, "fetch.workers", 1, "Concurrent fetches per bucket; 1 keeps sequential behavior")
	flag.StringVar(&configPath, "config", "", "Optional YAML config file")
	flag.StringVar(&outPath, "out", "", "Write the JSON result here instead of stdout")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		SerperAPIKey:   serperKey,
		SearchFile:     searchFile,
		UserAgent:      userAgent,
		FetchTimeout:   fetchTimeout,
		OverallTimeout: subjectTimeout,
		FetchWorkers:   workers,
		Verbose:        verbose,
	}
	if maxPDFMB > 0 {
		cfg.MaxPDFBytes = maxPDFMB << 20
	}
	// Precedence: flag > env > file > default, so env overlays first and the
	// file only fills what is still unset.
	app.ApplyEnvToConfig(&cfg)
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
		app.ApplyFileToConfig(&cfg, fc)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "plinian-allocator-service/1.0"
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if name == "" && website == "" && domain == "" {
		fmt.Fprintln(os.Stderr, "usage: allocatord -name \"Subject Name\" [-website URL] [-domain example.org]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	sub := subject.Subject{
		Name:               name,
		Website:            website,
		Domain:             domain,
		InvestmentsPageURL: investmentsURL,
		LatestReportURL:    reportURL,
	}

	out := app.New(cfg).Research(context.Background(), sub)

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("encode result")
	}
	encoded = append(encoded, '\n')
	if outPath != "" {
		if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
			log.Fatal().Err(err).Msg("write result")
		}
		log.Info().Str("out", outPath).Msg("wrote result")
		return
	}
	if _, err := os.Stdout.Write(encoded); err != nil {
		log.Fatal().Err(err).Msg("write stdout")
	}
}
