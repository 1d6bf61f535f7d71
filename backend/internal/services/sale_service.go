package services

import (
	"context"

	"github.com/ps-vitor/sales-events/backend/internal/domain"
	"github.com/ps-vitor/sales-events/backend/internal/repositories"
)

type SaleService struct {
	repo repositories.SaleRepository
}

func NewSaleService(repo repositories.SaleRepository) *SaleService {
	return &SaleService{repo: repo}
}

func (s *SaleService) FindAll(ctx context.Context) ([]domain.SaleRecord, error) {
	return s.repo.FindAll(ctx)
}

// FindBySuburb filters on the suburb name the API returned.
func (s *SaleService) FindBySuburb(ctx context.Context, suburb string) ([]domain.SaleRecord, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.SaleRecord{}
	for _, sale := range all {
		if sale.Suburb == suburb {
			out = append(out, sale)
		}
	}
	return out, nil
}
