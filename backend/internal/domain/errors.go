package domain

import "errors"

var (
	// ErrElementNotFound means the page loaded but held no element matching
	// the configured selector.
	ErrElementNotFound = errors.New("text element not found on page")
	// ErrUnexpectedStatus wraps non-2xx responses from the sales-events API.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrScrapeInProgress is returned when a run is requested while another
	// one still holds the fetcher and the output file.
	ErrScrapeInProgress = errors.New("scrape already in progress")
)
