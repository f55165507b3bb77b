// aniparsed is the non-interactive scan daemon. It is meant to be run from
// a systemd timer (or cron) at the frequency configured in config.toml: it
// scans the configured libraries, writes a JSON report and prunes old ones.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nomadcxx/aniparse/internal/config"
	"github.com/Nomadcxx/aniparse/internal/library"
	"github.com/Nomadcxx/aniparse/internal/logging"
	"github.com/Nomadcxx/aniparse/internal/reporter"
)

var (
	// Version information (set via -ldflags during build)
	version = "dev"

	logFormat = flag.String("log-format", "console", "log format: console or json")
	logLevel  = flag.String("log-level", "", "override configured log level")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintln(os.Stderr, "Create config at ~/.config/aniparse/config.toml")
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Daemon.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	log := logging.New(logging.Config{Level: level, Format: *logFormat})
	log.Info().Str("version", version).Msg("aniparsed starting scheduled scan")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn().Msg("signal received, cancelling scan")
		cancel()
	}()

	scanner := library.NewScanner()
	scanner.Options = cfg.Parser.Options()
	scanner.Log = log

	result, err := scanner.Scan(ctx, cfg.Libraries.Paths, nil)
	if err != nil {
		if err == context.Canceled {
			log.Warn().Msg("scan cancelled by signal")
			os.Exit(130)
		}
		log.Error().Err(err).Msg("scan failed")
		os.Exit(1)
	}

	reportPath, err := reporter.Generate(reporter.Report{
		Timestamp:    time.Now(),
		LibraryPaths: cfg.Libraries.Paths,
		Result:       *result,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to write report")
		os.Exit(1)
	}

	log.Info().
		Int("files", len(result.Files)).
		Int("titles", len(result.Groups)).
		Int("unparsed", len(result.Unparsed)).
		Str("report", reportPath).
		Msg("scan complete")

	if err := reporter.CleanupOldReports(); err != nil {
		log.Warn().Err(err).Msg("failed to clean old reports")
	}
}
