package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// ReportArchive stores exported report documents.
//
//go:generate mockery --name ReportArchive --output ../mocks
type ReportArchive interface {
	Put(ctx context.Context, key string, body []byte, metadata map[string]string) error
}

// CostReportRequest selects the period: a calendar type with a reference date,
// or CUSTOMIZADO with an explicit range.
type CostReportRequest struct {
	Tipo       domain.ReportType
	Referencia domain.Date
	From       domain.Date
	To         domain.Date
}

type ReportService struct {
	clinicalCosts repository.Store[domain.ClinicalCost]
	fixedCosts    repository.Store[domain.FixedCost]
	variableCosts repository.Store[domain.VariableCost]
	stock         repository.StockRepository
	archive       ReportArchive
	now           func() time.Time
}

func NewReportService(repo repository.Repository, archive ReportArchive) *ReportService {
	return &ReportService{
		clinicalCosts: repo.ClinicalCosts(),
		fixedCosts:    repo.FixedCosts(),
		variableCosts: repo.VariableCosts(),
		stock:         repo.Stock(),
		archive:       archive,
		now:           time.Now,
	}
}

func (s *ReportService) CostReport(ctx context.Context, scope tenant.Scope, req CostReportRequest) (domain.CostReport, error) {
	from, to, err := domain.ReportPeriod(req.Tipo, req.Referencia, req.From, req.To)
	if err != nil {
		return domain.CostReport{}, err
	}

	var fixed, variable, clinical, supplies decimal.Decimal
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		fixed, err = s.fixedCosts.Sum(gctx, scope, "valor", between("data", from, to)...)
		return err
	})
	g.Go(func() (err error) {
		variable, err = s.variableCosts.Sum(gctx, scope, "valor_total", between("data", from, to)...)
		return err
	})
	g.Go(func() (err error) {
		clinical, err = s.clinicalCosts.Sum(gctx, scope, "total_cost", between("date", from, to)...)
		return err
	})
	g.Go(func() (err error) {
		// movements carry a timestamp, so the civil range is widened to whole days
		supplies, err = s.stock.SumMovements(gctx, scope,
			repository.Eq("tipo", string(domain.MovementOut)),
			repository.Gte("created_at", from.Time),
			repository.Lte("created_at", to.AddDate(0, 0, 1).Add(-time.Nanosecond)),
		)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.CostReport{}, err
	}
	return domain.NewCostReport(scope.TenantID(), req.Tipo, from, to, fixed, variable, clinical, supplies, s.now().UTC()), nil
}

// ReportKey is the object key an exported report is stored under.
func ReportKey(tenantID string, from, to domain.Date) string {
	return fmt.Sprintf("cost-reports/%s/%s_%s.json", tenantID, from, to)
}

// ExportCostReport builds the report and uploads it, returning the object key.
func (s *ReportService) ExportCostReport(ctx context.Context, scope tenant.Scope, req CostReportRequest) (string, domain.CostReport, error) {
	report, err := s.CostReport(ctx, scope, req)
	if err != nil {
		return "", domain.CostReport{}, err
	}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", domain.CostReport{}, fmt.Errorf("failed to marshal cost report: %w", err)
	}

	key := ReportKey(report.SubscriberID, report.DataInicio, report.DataFim)
	err = s.archive.Put(ctx, key, body, map[string]string{
		"tenant-id":    report.SubscriberID,
		"report-type":  string(report.Tipo),
		"generated-at": report.GeneratedAt.Format(time.RFC3339),
	})
	if err != nil {
		return "", domain.CostReport{}, domain.NewInfrastructureError("upload cost report", err)
	}
	return key, report, nil
}
