// backend/internal/scraping/fetcher.go
package scraping

import (
	"context"
	"fmt"

	"github.com/ps-vitor/sales-events/backend/internal/config"
	"github.com/ps-vitor/sales-events/backend/internal/scrapers/browser"
	"github.com/ps-vitor/sales-events/backend/internal/scraping/collectors/salesevents"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

// Fetcher is a page source that holds a session until Close.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// NewFetcher builds the transport named by cfg.Transport.
func NewFetcher(ctx context.Context, cfg config.ScrapingConfig, log *logger.Logger) (Fetcher, error) {
	switch cfg.Transport {
	case config.TransportBrowser:
		client, err := browser.NewClient(ctx, browser.Options{
			Headless:    cfg.Headless,
			UserAgent:   cfg.UserAgent,
			Selector:    cfg.Selector,
			PageTimeout: cfg.PageTimeout,
		}, log.Component("browser"))
		if err != nil {
			return nil, err
		}
		log.Info("headless browser started", "headless", cfg.Headless)
		return client, nil
	case config.TransportHTTP:
		return salesevents.NewSalesEventsCollector(salesevents.Options{
			UserAgent: cfg.UserAgent,
			Selector:  cfg.Selector,
			Timeout:   cfg.PageTimeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
