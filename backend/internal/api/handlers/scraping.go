// backend/internal/api/handlers/scraping.go

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ps-vitor/sales-events/backend/internal/api/models"
	"github.com/ps-vitor/sales-events/backend/internal/domain"
	"github.com/ps-vitor/sales-events/backend/pkg/logger"
)

// Scraper is satisfied by services.ScraperService.
type Scraper interface {
	ScrapeAndStore(ctx context.Context) (domain.RunReport, error)
}

type ScrapingHandler struct {
	scraper Scraper
	log     *logger.Logger
}

func NewScrapingHandler(scraper Scraper, log *logger.Logger) *ScrapingHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ScrapingHandler{scraper: scraper, log: log.Component("api")}
}

func (h *ScrapingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/scrape", h.HandleScrape).Methods(http.MethodGet, http.MethodPost)
}

// HandleScrape runs a full pass and answers with the run report. Per-suburb
// failures are part of a successful response.
func (h *ScrapingHandler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	report, err := h.scraper.ScrapeAndStore(r.Context())
	switch {
	case errors.Is(err, domain.ErrScrapeInProgress):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		h.log.Err("scrape failed", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ScrapeResponse{
		Suburbs:   len(report.Outcomes),
		Failed:    report.Failed(),
		Rows:      report.TotalRows(),
		RunReport: report,
	})
}
