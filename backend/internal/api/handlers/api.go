package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ps-vitor/sales-events/backend/internal/api/models"
	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

// SaleFinder is satisfied by services.SaleService.
type SaleFinder interface {
	FindAll(ctx context.Context) ([]domain.SaleRecord, error)
	FindBySuburb(ctx context.Context, suburb string) ([]domain.SaleRecord, error)
}

type APIHandler struct {
	sales SaleFinder
}

func NewAPIHandler(sales SaleFinder) *APIHandler {
	return &APIHandler{sales: sales}
}

func (h *APIHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/sales", h.handleSales).Methods(http.MethodGet)
}

func (h *APIHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSales lists the rows of the last run, optionally filtered by ?suburb=.
func (h *APIHandler) handleSales(w http.ResponseWriter, r *http.Request) {
	var (
		sales []domain.SaleRecord
		err   error
	)
	if suburb := r.URL.Query().Get("suburb"); suburb != "" {
		sales, err = h.sales.FindBySuburb(r.Context(), suburb)
	} else {
		sales, err = h.sales.FindAll(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, models.SalesResponse{Count: len(sales), Sales: sales})
}

// NewRouter wires both handlers onto a fresh mux router.
func NewRouter(api *APIHandler, scraping *ScrapingHandler) *mux.Router {
	r := mux.NewRouter()
	api.RegisterRoutes(r)
	scraping.RegisterRoutes(r)
	return r
}
