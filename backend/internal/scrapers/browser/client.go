// backend/internal/scrapers/browser/client.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

type Options struct {
	Headless    bool
	UserAgent   string
	Selector    string
	PageTimeout time.Duration
	// ExecPath overrides Chrome discovery; empty uses chromedp's lookup.
	ExecPath string
}

// Client is one headless Chrome with a single tab, reused for every page.
type Client struct {
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	selector    string
	timeout     time.Duration
	closeOnce   sync.Once
}

type textResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

// NewClient launches Chrome and opens its tab. The browser lives until Close,
// independent of ctx being cancelled later.
func NewClient(ctx context.Context, opts Options, log *logger.Logger) (*Client, error) {
	if opts.Selector == "" {
		opts.Selector = "pre"
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("log-level", "3"),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...))
		}),
		chromedp.WithErrorf(func(format string, args ...any) {
			log.Warn(fmt.Sprintf(format, args...))
		}),
	)

	// An empty Run starts the browser now, so a missing Chrome fails here
	// rather than on the first suburb.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	return &Client{
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
		selector:    opts.Selector,
		timeout:     opts.PageTimeout,
	}, nil
}

// Fetch loads url and returns the text content of the first element
// matching the client's selector.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pageCtx, cancel := context.WithTimeout(c.tabCtx, c.timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var res textResult
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(fmt.Sprintf(`
			(() => {
				const el = document.querySelector(%q);
				if (!el) return { found: false, text: '' };
				return { found: true, text: el.textContent };
			})();
		`, c.selector), &res),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("load %s: %w", url, err)
	}
	if !res.Found {
		return "", fmt.Errorf("%w: %q at %s", domain.ErrElementNotFound, c.selector, url)
	}
	return res.Text, nil
}

// Close shuts the tab and kills Chrome. Safe to call more than once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.tabCancel()
		c.allocCancel()
	})
	return nil
}
