package service

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type FinanceService struct {
	payables      repository.Store[domain.Payable]
	receivables   repository.Store[domain.Receivable]
	clinicalCosts repository.Store[domain.ClinicalCost]
	fixedCosts    repository.Store[domain.FixedCost]
	variableCosts repository.Store[domain.VariableCost]
}

func NewFinanceService(repo repository.Repository) *FinanceService {
	return &FinanceService{
		payables:      repo.Payables(),
		receivables:   repo.Receivables(),
		clinicalCosts: repo.ClinicalCosts(),
		fixedCosts:    repo.FixedCosts(),
		variableCosts: repo.VariableCosts(),
	}
}

func (s *FinanceService) MarkPayablePaid(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Payable, error) {
	return s.payables.Update(ctx, scope, id, func(p *domain.Payable) error {
		return p.MarkAsPaid(on)
	})
}

func (s *FinanceService) MarkReceivableReceived(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Receivable, error) {
	return s.receivables.Update(ctx, scope, id, func(r *domain.Receivable) error {
		return r.MarkAsReceived(on)
	})
}

func between(column string, from, to domain.Date) []repository.Filter {
	return []repository.Filter{repository.Gte(column, from), repository.Lte(column, to)}
}

func (s *FinanceService) revenue(ctx context.Context, scope tenant.Scope, from, to domain.Date) (decimal.Decimal, error) {
	filters := append(between("receive_date", from, to), repository.Eq("received", true))
	return s.receivables.Sum(ctx, scope, "amount", filters...)
}

// CashFlow sums money actually received and paid inside the period.
func (s *FinanceService) CashFlow(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.CashFlowSummary, error) {
	if err := domain.CheckPeriod(from, to); err != nil {
		return domain.CashFlowSummary{}, err
	}

	var inflows, outflows decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		inflows, err = s.revenue(gctx, scope, from, to)
		return err
	})
	g.Go(func() (err error) {
		filters := append(between("payment_date", from, to), repository.Eq("paid", true))
		outflows, err = s.payables.Sum(gctx, scope, "amount", filters...)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CashFlowSummary{}, err
	}
	return domain.NewCashFlowSummary(from, to, inflows, outflows), nil
}

// Profit compares received revenue with the costs booked in the period.
func (s *FinanceService) Profit(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.ProfitCalculation, error) {
	if err := domain.CheckPeriod(from, to); err != nil {
		return domain.ProfitCalculation{}, err
	}

	var revenue, clinical, fixed, variable decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		revenue, err = s.revenue(gctx, scope, from, to)
		return err
	})
	g.Go(func() (err error) {
		clinical, err = s.clinicalCosts.Sum(gctx, scope, "total_cost", between("date", from, to)...)
		return err
	})
	g.Go(func() (err error) {
		fixed, err = s.fixedCosts.Sum(gctx, scope, "valor", between("data", from, to)...)
		return err
	})
	g.Go(func() (err error) {
		variable, err = s.variableCosts.Sum(gctx, scope, "valor_total", between("data", from, to)...)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ProfitCalculation{}, err
	}
	return domain.NewProfitCalculation(from, to, revenue, clinical, fixed, variable), nil
}
