// ./backend/cmd/salesevents/main.go

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/ps-vitor/sales-events/backend/internal/config"
	"github.com/ps-vitor/sales-events/backend/internal/domain"
	"github.com/ps-vitor/sales-events/backend/internal/scraping"
	"github.com/ps-vitor/sales-events/backend/internal/scraping/collectors/salesevents"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

// Prints the extracted sales of one suburb as JSON, without touching the CSV.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: salesevents <suburb-slug>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		log.Fatalf("salesevents: %v", err)
	}
}

func run(slug string) error {
	cfg, err := config.LoadConfig(config.DefaultPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// logs go to stderr so stdout stays valid JSON
	lg := logger.New(logger.Config{Writer: os.Stderr, Level: cfg.App.LogLevel})

	ctx := context.Background()
	fetcher, err := scraping.NewFetcher(ctx, cfg.Scraping, lg)
	if err != nil {
		return fmt.Errorf("start fetcher: %w", err)
	}
	defer fetcher.Close()

	text, err := fetcher.Fetch(ctx, cfg.Scraping.URLFor(slug))
	if err != nil {
		return fmt.Errorf("fetch %s: %w", slug, err)
	}

	page, err := salesevents.Extract([]byte(text))
	if err != nil {
		return fmt.Errorf("extract %s: %w", slug, err)
	}

	sales := page.Sales
	if sales == nil {
		sales = []domain.SaleRecord{}
	}
	jsonData, err := json.MarshalIndent(sales, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}
