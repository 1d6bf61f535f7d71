package repositories

import (
	"context"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
)

// SaleRepository stores the rows of one scrape run and reads them back.
type SaleRepository interface {
	// Begin starts a new run, discarding previous rows.
	Begin(ctx context.Context) (SaleWriter, error)
	FindAll(ctx context.Context) ([]domain.SaleRecord, error)
}

// SaleWriter appends rows for the run opened by Begin.
type SaleWriter interface {
	Save(ctx context.Context, sales []domain.SaleRecord) error
	Close() error
}
