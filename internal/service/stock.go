package service

import (
	"context"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type StockService struct {
	insumos repository.Store[domain.Insumo]
	stock   repository.StockRepository
}

func NewStockService(repo repository.Repository) *StockService {
	return &StockService{
		insumos: repo.Insumos(),
		stock:   repo.Stock(),
	}
}

// MovementResult is the insumo after the movement plus the ledger entry.
type MovementResult struct {
	Insumo   *domain.Insumo
	Movement *domain.StockMovement
}

func (s *StockService) RegisterMovement(ctx context.Context, scope tenant.Scope, insumoID string, tipo domain.MovementType, quantidade int, motivo, usuarioID string) (*MovementResult, error) {
	m, err := domain.NewStockMovement(tipo, quantidade, motivo, usuarioID)
	if err != nil {
		return nil, err
	}
	insumo, err := s.stock.ApplyMovement(ctx, scope, insumoID, m)
	if err != nil {
		return nil, err
	}
	return &MovementResult{Insumo: insumo, Movement: m}, nil
}

// ListMovements pages through the ledger of an insumo, including deactivated ones.
func (s *StockService) ListMovements(ctx context.Context, scope tenant.Scope, insumoID string, page repository.Pagination) (*repository.Page[domain.StockMovement], error) {
	if _, err := s.insumos.FindByID(ctx, scope, insumoID); err != nil {
		return nil, err
	}
	items, total, err := s.stock.ListMovements(ctx, scope, insumoID, page)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, page), nil
}

// LowStock lists active insumos at or below their minimum. The comparison is
// between two columns, so it is evaluated here over the full active set.
func (s *StockService) LowStock(ctx context.Context, scope tenant.Scope, page repository.Pagination) (*repository.Page[domain.Insumo], error) {
	var low []domain.Insumo
	for p := 1; ; p++ {
		chunk := repository.NewPagination(p, repository.MaxPageSize)
		items, total, err := s.insumos.List(ctx, scope, repository.Query{Page: chunk})
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			if it.IsLowStock() {
				low = append(low, it)
			}
		}
		if int64(chunk.Offset()+len(items)) >= total || len(items) == 0 {
			break
		}
	}

	page = page.Normalized()
	start := min(page.Offset(), len(low))
	end := min(start+page.Limit(), len(low))
	return repository.NewPage(low[start:end], int64(len(low)), page), nil
}
