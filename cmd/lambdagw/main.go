package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"lambdagw/internal/config"
	"lambdagw/internal/deploy"
	"lambdagw/internal/logging"
	"lambdagw/internal/telemetry"
	"lambdagw/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// flags holds command-line overrides; empty values leave the config as loaded.
type flags struct {
	configPath string
	backend    string
	logFile    string
	logLevel   string
	timeout    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to config.yaml (default: user config dir)")
	flag.StringVar(&f.backend, "backend", "", "backend base URL, e.g. http://localhost:8000")
	flag.StringVar(&f.logFile, "log-file", "", "log file path")
	flag.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flag.StringVar(&f.timeout, "timeout", "", "HTTP timeout per backend call, e.g. 30s")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lambdagw [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Console for the lambda gateway: compose build requests and\n")
		fmt.Fprintf(os.Stderr, "browse deployed applications.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	return f
}

func (f flags) apply(cfg *config.Config) {
	if f.backend != "" {
		cfg.BackendURL = f.backend
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.timeout != "" {
		cfg.HTTPTimeout = f.timeout
	}
}

func main() {
	if err := run(parseFlags()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	timeout, _ := cfg.Timeout()

	log, closer, err := logging.OpenFile(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	tp, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("trace provider shutdown")
		}
	}()

	client := deploy.NewHTTPClient(deploy.Config{
		BaseURL:    cfg.BackendURL,
		HTTPClient: &http.Client{Timeout: timeout},
		Tracer:     tp.Tracer(),
		Logger:     log,
	})
	log.WithFields(logrus.Fields{
		"backend": cfg.BackendURL,
		"timeout": timeout.String(),
		"tracing": tp.Enabled(),
	}).Info("lambdagw starting")

	model := ui.NewAppModel(client, log).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}
	return nil
}
