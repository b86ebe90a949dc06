package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/mocks"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type ReportServiceTestSuite struct {
	suite.Suite
	repo    repository.Repository
	archive *mocks.ReportArchive
	service *ReportService
	scope   tenant.Scope
	clock   time.Time
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.repo = memory.NewRepository()
	s.clock = time.Date(2030, time.January, 20, 9, 30, 0, 0, time.UTC)
	memory.SetClock(s.repo, func() time.Time { return s.clock })
	s.archive = new(mocks.ReportArchive)
	s.service = NewReportService(s.repo, s.archive)
	s.service.now = func() time.Time { return s.clock }
	s.scope = tenant.For("sub-a")
	s.seedCosts()
}

func TestReportService(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) seedCosts() {
	ctx := context.Background()

	fixed, err := domain.FixedCostDraft{Nome: "Aluguel", Valor: money("1500.00"), Data: day(5)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FixedCosts().Create(ctx, s.scope, fixed))

	variable, err := domain.VariableCostDraft{Nome: "Energia", ValorUnitario: money("0.80"), Quantidade: 500, Data: day(10)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.VariableCosts().Create(ctx, s.scope, variable))

	clinical, err := domain.ClinicalCostDraft{ProcedureName: "Canal", DurationHours: money("2"), HourlyRate: money("150"), Date: day(12)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.ClinicalCosts().Create(ctx, s.scope, clinical))

	// next month, outside a January report
	later, err := domain.FixedCostDraft{Nome: "Aluguel", Valor: money("1500.00"), Data: domain.NewDate(2030, time.February, 5)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FixedCosts().Create(ctx, s.scope, later))

	insumo, err := domain.InsumoDraft{
		Nome: "Luvas", Tipo: "descartavel", Unidade: "caixa", Categoria: "EPI",
		ValorUnitario: money("20.00"), EstoqueAtual: 10,
	}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Insumos().Create(ctx, s.scope, insumo))
	stock := NewStockService(s.repo)
	_, err = stock.RegisterMovement(ctx, s.scope, insumo.ID, domain.MovementOut, 3, "uso", "u-1")
	s.Require().NoError(err)
	_, err = stock.RegisterMovement(ctx, s.scope, insumo.ID, domain.MovementIn, 10, "compra", "u-1")
	s.Require().NoError(err)
}

func (s *ReportServiceTestSuite) TestCostReport_Monthly() {
	// Act
	report, err := s.service.CostReport(context.Background(), s.scope, CostReportRequest{
		Tipo:       domain.ReportMonthly,
		Referencia: day(15),
	})

	// Assert
	s.NoError(err)
	s.Equal("sub-a", report.SubscriberID)
	s.Equal("2030-01-01", report.DataInicio.String())
	s.Equal("2030-01-31", report.DataFim.String())
	s.True(report.TotalFixed.Equal(money("1500")), report.TotalFixed.String())
	s.True(report.TotalVariable.Equal(money("400")), report.TotalVariable.String())
	s.True(report.TotalClinical.Equal(money("300")), report.TotalClinical.String())
	s.True(report.TotalSupplies.Equal(money("60")), report.TotalSupplies.String())
	s.True(report.Total.Equal(money("2260")), report.Total.String())
	s.Equal(s.clock, report.GeneratedAt)
}

func (s *ReportServiceTestSuite) TestCostReport_OtherTenantIsEmpty() {
	// Act
	report, err := s.service.CostReport(context.Background(), tenant.For("sub-b"), CostReportRequest{
		Tipo:       domain.ReportYearly,
		Referencia: day(1),
	})

	// Assert
	s.NoError(err)
	s.True(report.Total.IsZero())
}

func (s *ReportServiceTestSuite) TestCostReport_CustomRequiresRange() {
	// Act
	_, err := s.service.CostReport(context.Background(), s.scope, CostReportRequest{Tipo: domain.ReportCustom})

	// Assert
	s.True(domain.IsValidation(err))
}

func (s *ReportServiceTestSuite) TestCostReport_UnknownType() {
	// Act
	_, err := s.service.CostReport(context.Background(), s.scope, CostReportRequest{Tipo: "SEMANAL"})

	// Assert
	s.True(domain.IsValidation(err))
}

func (s *ReportServiceTestSuite) TestExportCostReport_Success() {
	// Arrange
	ctx := context.Background()
	wantKey := "cost-reports/sub-a/2030-01-01_2030-03-31.json"
	var uploaded []byte
	s.archive.On("Put", ctx, wantKey, mock.AnythingOfType("[]uint8"), mock.MatchedBy(func(meta map[string]string) bool {
		return meta["tenant-id"] == "sub-a" && meta["report-type"] == "TRIMESTRAL"
	})).Run(func(args mock.Arguments) {
		uploaded = args.Get(2).([]byte)
	}).Return(nil)

	// Act
	key, report, err := s.service.ExportCostReport(ctx, s.scope, CostReportRequest{
		Tipo:       domain.ReportQuarterly,
		Referencia: day(20),
	})

	// Assert
	s.NoError(err)
	s.Equal(wantKey, key)
	s.True(report.TotalFixed.Equal(money("3000")))
	var doc map[string]any
	s.Require().NoError(json.Unmarshal(uploaded, &doc))
	s.Equal("TRIMESTRAL", doc["tipo"])
	s.Equal("2030-01-01", doc["data_inicio"])
	s.archive.AssertExpectations(s.T())
}

func (s *ReportServiceTestSuite) TestExportCostReport_UploadFails() {
	// Arrange
	ctx := context.Background()
	s.archive.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))

	// Act
	key, _, err := s.service.ExportCostReport(ctx, s.scope, CostReportRequest{Tipo: domain.ReportMonthly, Referencia: day(1)})

	// Assert
	s.Empty(key)
	s.Equal(domain.KindInfrastructure, domain.KindOf(err))
}
