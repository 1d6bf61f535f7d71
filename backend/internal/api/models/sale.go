// ./backend/internal/api/models/sale.go

package models

import "github.com/ps-vitor/sales-events/backend/internal/domain"

type SalesResponse struct {
	Count int                 `json:"count"`
	Sales []domain.SaleRecord `json:"sales"`
}

type ScrapeResponse struct {
	Suburbs int `json:"suburbs"`
	Failed  int `json:"failed"`
	Rows    int `json:"rows"`
	domain.RunReport
}

type ErrorResponse struct {
	Error string `json:"error"`
}
