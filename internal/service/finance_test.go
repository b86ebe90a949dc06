package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/repository/memory"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) domain.Date {
	return domain.NewDate(2030, time.January, d)
}

type FinanceServiceTestSuite struct {
	suite.Suite
	repo    repository.Repository
	service *FinanceService
	scope   tenant.Scope
}

func (s *FinanceServiceTestSuite) SetupTest() {
	s.repo = memory.NewRepository()
	s.service = NewFinanceService(s.repo)
	s.scope = tenant.For("sub-a")
}

func TestFinanceService(t *testing.T) {
	suite.Run(t, new(FinanceServiceTestSuite))
}

func (s *FinanceServiceTestSuite) receivable(amount string, due domain.Date) *domain.Receivable {
	r, err := domain.ReceivableDraft{Description: "Consulta", Amount: money(amount), DueDate: due}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Receivables().Create(context.Background(), s.scope, r))
	return r
}

func (s *FinanceServiceTestSuite) payable(amount string, due domain.Date) *domain.Payable {
	p, err := domain.PayableDraft{Description: "Aluguel", Amount: money(amount), DueDate: due}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Payables().Create(context.Background(), s.scope, p))
	return p
}

func (s *FinanceServiceTestSuite) TestMarkPayablePaid_Twice() {
	// Arrange
	ctx := context.Background()
	p := s.payable("300.00", day(15))

	// Act
	paid, err := s.service.MarkPayablePaid(ctx, s.scope, p.ID, day(14))
	_, again := s.service.MarkPayablePaid(ctx, s.scope, p.ID, day(16))

	// Assert
	s.NoError(err)
	s.True(paid.Paid)
	s.True(paid.PaymentDate.Equal(day(14).Time))
	s.True(domain.IsValidation(again))
}

func (s *FinanceServiceTestSuite) TestMarkReceivableReceived_OtherTenant() {
	// Arrange
	r := s.receivable("100.00", day(10))

	// Act
	_, err := s.service.MarkReceivableReceived(context.Background(), tenant.For("sub-b"), r.ID, day(10))

	// Assert
	s.True(domain.IsNotFound(err))
}

func (s *FinanceServiceTestSuite) TestCashFlow_OnlySettledMoneyInPeriod() {
	// Arrange
	ctx := context.Background()
	in := s.receivable("1000.00", day(5))
	late := s.receivable("400.00", day(5))
	s.receivable("250.00", day(6))
	out := s.payable("300.00", day(20))
	s.payable("999.00", day(20))

	_, err := s.service.MarkReceivableReceived(ctx, s.scope, in.ID, day(10))
	s.Require().NoError(err)
	_, err = s.service.MarkReceivableReceived(ctx, s.scope, late.ID, domain.NewDate(2030, time.February, 2))
	s.Require().NoError(err)
	_, err = s.service.MarkPayablePaid(ctx, s.scope, out.ID, day(15))
	s.Require().NoError(err)

	// Act
	flow, err := s.service.CashFlow(ctx, s.scope, day(1), day(31))

	// Assert
	s.NoError(err)
	s.True(flow.TotalInflows.Equal(money("1000")), flow.TotalInflows.String())
	s.True(flow.TotalOutflows.Equal(money("300")), flow.TotalOutflows.String())
	s.True(flow.NetFlow.Equal(money("700")), flow.NetFlow.String())
}

func (s *FinanceServiceTestSuite) TestCashFlow_InvertedPeriod() {
	// Act
	_, err := s.service.CashFlow(context.Background(), s.scope, day(20), day(1))

	// Assert
	s.True(domain.IsValidation(err))
}

func (s *FinanceServiceTestSuite) TestProfit_GrossAndNet() {
	// Arrange
	ctx := context.Background()
	r := s.receivable("2000.00", day(3))
	_, err := s.service.MarkReceivableReceived(ctx, s.scope, r.ID, day(3))
	s.Require().NoError(err)

	clinical, err := domain.ClinicalCostDraft{
		ProcedureName: "Restauracao",
		DurationHours: money("1.5"),
		HourlyRate:    money("120.00"),
		Date:          day(4),
	}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.ClinicalCosts().Create(ctx, s.scope, clinical))

	fixed, err := domain.FixedCostDraft{Nome: "Aluguel", Valor: money("800.00"), Data: day(1)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FixedCosts().Create(ctx, s.scope, fixed))

	variable, err := domain.VariableCostDraft{Nome: "Luvas", ValorUnitario: money("2.50"), Quantidade: 40, Data: day(8)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.VariableCosts().Create(ctx, s.scope, variable))

	outside, err := domain.FixedCostDraft{Nome: "Seguro", Valor: money("500.00"), Data: domain.NewDate(2029, time.December, 31)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FixedCosts().Create(ctx, s.scope, outside))

	// Act
	profit, err := s.service.Profit(ctx, s.scope, day(1), day(31))

	// Assert
	s.NoError(err)
	s.True(profit.TotalRevenue.Equal(money("2000")))
	s.True(profit.ClinicalCosts.Equal(money("180")), profit.ClinicalCosts.String())
	s.True(profit.FixedCosts.Equal(money("800")))
	s.True(profit.VariableCosts.Equal(money("100")))
	s.True(profit.TotalCosts.Equal(money("1080")))
	s.True(profit.GrossProfit.Equal(money("1820")))
	s.True(profit.NetProfit.Equal(money("920")))
}

func (s *FinanceServiceTestSuite) TestProfit_DeletedCostsAreIgnored() {
	// Arrange
	ctx := context.Background()
	fixed, err := domain.FixedCostDraft{Nome: "Aluguel", Valor: money("800.00"), Data: day(1)}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.FixedCosts().Create(ctx, s.scope, fixed))
	s.Require().NoError(s.repo.FixedCosts().Delete(ctx, s.scope, fixed.ID))

	// Act
	profit, err := s.service.Profit(ctx, s.scope, day(1), day(31))

	// Assert
	s.NoError(err)
	s.True(profit.FixedCosts.IsZero())
	s.True(profit.NetProfit.IsZero())
}
