// backend/internal/scraping/collectors/salesevents/collector.go
package salesevents

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

// Options configures a SalesEventsCollector.
type Options struct {
	UserAgent string
	Selector  string
	Timeout   time.Duration
	// AllowedDomains restricts visits; empty means any host.
	AllowedDomains []string
}

// SalesEventsCollector fetches sales-events pages over plain HTTP, without a
// browser. JSON bodies are returned untouched; HTML bodies are reduced to the
// text of the selector element, the same text a browser would expose.
type SalesEventsCollector struct {
	collector *colly.Collector
	selector  string
}

func NewSalesEventsCollector(opts Options) *SalesEventsCollector {
	if opts.Selector == "" {
		opts.Selector = "pre"
	}

	collectorOpts := []colly.CollectorOption{
		colly.AllowURLRevisit(),
	}
	if opts.UserAgent != "" {
		collectorOpts = append(collectorOpts, colly.UserAgent(opts.UserAgent))
	}
	if len(opts.AllowedDomains) > 0 {
		collectorOpts = append(collectorOpts, colly.AllowedDomains(opts.AllowedDomains...))
	}

	c := colly.NewCollector(collectorOpts...)
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}

	return &SalesEventsCollector{
		collector: c,
		selector:  opts.Selector,
	}
}

// Fetch returns the raw document text served at url.
func (p *SalesEventsCollector) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		body        []byte
		contentType string
		fetchErr    error
	)

	c := p.collector.Clone()
	// in-flight requests are cancelled with ctx, not only the next visit
	c.Context = ctx

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "application/json, text/html;q=0.9")
	})

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
		contentType = r.Headers.Get("Content-Type")
	})

	c.OnError(func(r *colly.Response, e error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("request %s: %w: %d", url, domain.ErrUnexpectedStatus, r.StatusCode)
			return
		}
		fetchErr = fmt.Errorf("request %s: %w", url, e)
	})

	if err := c.Visit(url); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("visit %s: %w", url, err)
	}
	c.Wait()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if fetchErr != nil {
		return "", fetchErr
	}
	if body == nil {
		return "", fmt.Errorf("request %s: empty response", url)
	}

	return p.documentText(body, contentType)
}

// Close is a no-op; the collector holds no long-lived session.
func (p *SalesEventsCollector) Close() error {
	return nil
}

func (p *SalesEventsCollector) documentText(body []byte, contentType string) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if strings.Contains(contentType, "json") || bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return string(body), nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	sel := doc.Find(p.selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %q", domain.ErrElementNotFound, p.selector)
	}
	return sel.Text(), nil
}
