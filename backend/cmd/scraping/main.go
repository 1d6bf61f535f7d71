// backend/cmd/scraping/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ps-vitor/sales-events/backend/internal/config"
	"github.com/ps-vitor/sales-events/backend/internal/repositories"
	"github.com/ps-vitor/sales-events/backend/internal/scraping"
	"github.com/ps-vitor/sales-events/backend/internal/services"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scraping:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = config.DefaultPath
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Config{Level: cfg.App.LogLevel, JSON: cfg.App.LogJSON})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := scraping.NewFetcher(ctx, cfg.Scraping, log)
	if err != nil {
		return fmt.Errorf("init %s transport: %w", cfg.Scraping.Transport, err)
	}
	defer func() {
		if err := fetcher.Close(); err != nil {
			log.Err("close fetcher", err)
		}
	}()

	repo := repositories.NewCSVSaleRepository(cfg.Output.File)
	svc := services.NewScraperService(fetcher, repo, cfg.Scraping, log)

	report, err := svc.ScrapeAndStore(ctx)
	if err != nil {
		return err
	}

	log.Info("data processing complete",
		"output", cfg.Output.File,
		"rows", report.TotalRows(),
		"failed", report.Failed(),
	)
	return nil
}
