package salesevents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/json/abbotsford-vic-3067", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(fullDocument))
	})
	mux.HandleFunc("/html/abbotsford-vic-3067", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><pre>{"data":{"suburb":{"name":"Abbotsford"}}}</pre></body></html>`))
	})
	mux.HandleFunc("/html/blocked", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><body><h1>Access denied</h1></body></html>`))
	})
	mux.HandleFunc("/json/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(fullDocument))
		}
	})
	mux.HandleFunc("/json/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectorFetchJSON(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{Timeout: 5 * time.Second})
	defer c.Close()

	text, err := c.Fetch(context.Background(), srv.URL+"/json/abbotsford-vic-3067")
	require.NoError(t, err)
	assert.JSONEq(t, fullDocument, text)

	got, err := Extract([]byte(text))
	require.NoError(t, err)
	assert.Len(t, got.Sales, 3)
}

func TestCollectorFetchHTMLPre(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{Selector: "pre"})

	text, err := c.Fetch(context.Background(), srv.URL+"/html/abbotsford-vic-3067")
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"suburb":{"name":"Abbotsford"}}}`, text)
}

func TestCollectorElementNotFound(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{})

	_, err := c.Fetch(context.Background(), srv.URL+"/html/blocked")
	require.ErrorIs(t, err, domain.ErrElementNotFound)
}

func TestCollectorUnexpectedStatus(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{})

	_, err := c.Fetch(context.Background(), srv.URL+"/json/missing")
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestCollectorCancelledContext(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, srv.URL+"/json/abbotsford-vic-3067")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectorCancelledWhileInFlight(t *testing.T) {
	srv := newTestServer(t)
	c := NewSalesEventsCollector(Options{Timeout: 30 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := c.Fetch(ctx, srv.URL+"/json/slow")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
