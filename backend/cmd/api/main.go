// backend/cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ps-vitor/sales-events/backend/internal/api/handlers"
	"github.com/ps-vitor/sales-events/backend/internal/config"
	"github.com/ps-vitor/sales-events/backend/internal/repositories"
	"github.com/ps-vitor/sales-events/backend/internal/scraping"
	"github.com/ps-vitor/sales-events/backend/internal/services"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "api:", err)
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

	// Setup dependencies
	fetcher, err := scraping.NewFetcher(ctx, cfg.Scraping, log)
	if err != nil {
		return fmt.Errorf("init %s transport: %w", cfg.Scraping.Transport, err)
	}
	defer fetcher.Close()

	repo := repositories.NewCSVSaleRepository(cfg.Output.File)
	scraperSvc := services.NewScraperService(fetcher, repo, cfg.Scraping, log)

	r := handlers.NewRouter(
		handlers.NewAPIHandler(services.NewSaleService(repo)),
		handlers.NewScrapingHandler(scraperSvc, log),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
