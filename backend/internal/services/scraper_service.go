// internal/services/scraper_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ps-vitor/sales-events/backend/internal/config"
	"github.com/ps-vitor/sales-events/backend/internal/domain"
	"github.com/ps-vitor/sales-events/backend/internal/repositories"
	"github.com/ps-vitor/sales-events/backend/internal/scraping/collectors/salesevents"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

// PageFetcher returns the raw text a sales-events URL serves.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ScraperService walks the suburb list one slug at a time. A failure on one
// suburb is recorded in its outcome and never stops the run.
type ScraperService struct {
	fetcher PageFetcher
	repo    repositories.SaleRepository
	opts    config.ScrapingConfig
	log     *logger.Logger
	running atomic.Bool
}

// NewScraperService walks opts.Suburbs with opts.Delay between them. Only
// the URL, suburb and delay settings of opts are used.
func NewScraperService(fetcher PageFetcher, repo repositories.SaleRepository, opts config.ScrapingConfig, log *logger.Logger) *ScraperService {
	if log == nil {
		log = logger.Nop()
	}
	return &ScraperService{
		fetcher: fetcher,
		repo:    repo,
		opts:    opts,
		log:     log.Component("scraper"),
	}
}

// ScrapeAndStore runs one full pass over the suburbs. The returned error is
// only set when the output cannot be opened or closed, or ctx ends the run
// early; the report is valid in every case.
func (s *ScraperService) ScrapeAndStore(ctx context.Context) (report domain.RunReport, err error) {
	if !s.running.CompareAndSwap(false, true) {
		return report, domain.ErrScrapeInProgress
	}
	defer s.running.Store(false)

	report.StartedAt = time.Now()
	report.Outcomes = make([]domain.SuburbOutcome, len(s.opts.Suburbs))
	for i, slug := range s.opts.Suburbs {
		report.Outcomes[i] = domain.SuburbOutcome{Slug: slug, Status: domain.StatusPending}
	}
	defer func() { report.FinishedAt = time.Now() }()

	w, err := s.repo.Begin(ctx)
	if err != nil {
		return report, fmt.Errorf("open output: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", closeErr))
		}
	}()

	for i, slug := range s.opts.Suburbs {
		if i > 0 {
			if err := sleep(ctx, s.opts.Delay); err != nil {
				return report, err
			}
		}
		report.Outcomes[i] = s.processSuburb(ctx, w, slug)
		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	s.log.Info("run complete",
		"suburbs", len(report.Outcomes),
		"failed", report.Failed(),
		"rows", report.TotalRows(),
	)
	return report, nil
}

func (s *ScraperService) processSuburb(ctx context.Context, w repositories.SaleWriter, slug string) domain.SuburbOutcome {
	outcome := domain.SuburbOutcome{Slug: slug, Status: domain.StatusProcessed}
	log := s.log.With("slug", slug)
	log.Info("processing suburb")

	fail := func(err error) domain.SuburbOutcome {
		log.Err("error while processing suburb", err)
		outcome.Status = domain.StatusFailed
		outcome.Err = err
		outcome.Error = err.Error()
		return outcome
	}

	text, err := s.fetcher.Fetch(ctx, s.opts.URLFor(slug))
	if err != nil {
		return fail(fmt.Errorf("fetch: %w", err))
	}

	page, err := salesevents.Extract([]byte(text))
	if err != nil {
		return fail(err)
	}
	outcome.Suburb = page.Name

	if len(page.Sales) == 0 {
		log.Info("no private sales found", "suburb", page.Name)
		return outcome
	}

	if err := w.Save(ctx, page.Sales); err != nil {
		return fail(fmt.Errorf("save rows: %w", err))
	}
	outcome.Rows = len(page.Sales)

	log.Info("successfully processed suburb", "suburb", page.Name, "rows", outcome.Rows)
	return outcome
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
