package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/internal/utils"
)

type FinanceHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockFinanceService
	handler     *FinanceHandler
}

type MockFinanceService struct {
	mock.Mock
}

func (m *MockFinanceService) MarkPayablePaid(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Payable, error) {
	args := m.Called(ctx, scope, id, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockFinanceService) MarkReceivableReceived(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Receivable, error) {
	args := m.Called(ctx, scope, id, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockFinanceService) CashFlow(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.CashFlowSummary, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).(domain.CashFlowSummary), args.Error(1)
}

func (m *MockFinanceService) Profit(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.ProfitCalculation, error) {
	args := m.Called(ctx, scope, from, to)
	return args.Get(0).(domain.ProfitCalculation), args.Error(1)
}

func tenantA(scope tenant.Scope) bool {
	return !scope.IsUnrestricted() && scope.TenantID() == "sub-a"
}

func (s *FinanceHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockService = new(MockFinanceService)
	s.handler = NewFinanceHandler(s.mockService)
	s.handler.today = func() domain.Date { return domain.NewDate(2030, time.January, 20) }

	// Setup routes
	s.router.Use(func(c *gin.Context) {
		c.Set(string(utils.PrincipalKey), domain.Principal{UserID: "owner-1", TenantID: "sub-a", Role: domain.RoleOwner})
		c.Next()
	})
	s.router.GET("/finance/cashflow", s.handler.CashFlow)
	s.router.GET("/finance/profit", s.handler.Profit)
	s.router.POST("/finance/payables/:id/pay", s.handler.PayPayable)
}

func TestFinanceHandler(t *testing.T) {
	suite.Run(t, new(FinanceHandlerTestSuite))
}

func (s *FinanceHandlerTestSuite) TestCashFlow_Success() {
	// Arrange
	from := domain.NewDate(2030, time.January, 1)
	to := domain.NewDate(2030, time.January, 31)
	summary := domain.NewCashFlowSummary(from, to, decimal.RequireFromString("1000"), decimal.RequireFromString("300"))
	s.mockService.On("CashFlow", mock.Anything, mock.MatchedBy(tenantA), from, to).Return(summary, nil)

	req := httptest.NewRequest(http.MethodGet, "/finance/cashflow?from_date=2030-01-01&to_date=2030-01-31", nil)
	w := httptest.NewRecorder()

	// Act
	s.router.ServeHTTP(w, req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{
		"period_from": "2030-01-01",
		"period_to": "2030-01-31",
		"total_inflows": 1000.00,
		"total_outflows": 300.00,
		"net_flow": 700.00
	}`, w.Body.String())
	s.mockService.AssertExpectations(s.T())
}

func (s *FinanceHandlerTestSuite) TestCashFlow_MissingDates() {
	// Arrange
	req := httptest.NewRequest(http.MethodGet, "/finance/cashflow?from_date=2030-01-01", nil)
	w := httptest.NewRecorder()

	// Act
	s.router.ServeHTTP(w, req)

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	var resp dto.Error
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal("is required", resp.Errors["to_date"])
	s.mockService.AssertNotCalled(s.T(), "CashFlow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *FinanceHandlerTestSuite) TestProfit_ServiceFailure() {
	// Arrange
	s.mockService.On("Profit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ProfitCalculation{}, errors.New("database is down"))

	req := httptest.NewRequest(http.MethodGet, "/finance/profit?period_from=2030-01-01&period_to=2030-01-31", nil)
	w := httptest.NewRecorder()

	// Act
	s.router.ServeHTTP(w, req)

	// Assert
	s.Equal(http.StatusInternalServerError, w.Code)
	s.JSONEq(`{"detail":"internal server error"}`, w.Body.String())
}

func (s *FinanceHandlerTestSuite) TestPayPayable_DefaultsToToday() {
	// Arrange
	today := domain.NewDate(2030, time.January, 20)
	paid := &domain.Payable{Description: "Aluguel", Amount: decimal.RequireFromString("300"), Paid: true, PaymentDate: &today}
	paid.ID = "pay-1"
	s.mockService.On("MarkPayablePaid", mock.Anything, mock.MatchedBy(tenantA), "pay-1", today).Return(paid, nil)

	req := httptest.NewRequest(http.MethodPost, "/finance/payables/pay-1/pay", nil)
	w := httptest.NewRecorder()

	// Act
	s.router.ServeHTTP(w, req)

	// Assert
	s.Equal(http.StatusOK, w.Code)
	s.mockService.AssertExpectations(s.T())
}

func (s *FinanceHandlerTestSuite) TestPayPayable_NotFound() {
	// Arrange
	on := domain.NewDate(2030, time.January, 14)
	s.mockService.On("MarkPayablePaid", mock.Anything, mock.Anything, "missing", on).
		Return(nil, domain.NewNotFoundError("payable"))

	body, _ := json.Marshal(map[string]string{"date": "2030-01-14"})
	req := httptest.NewRequest(http.MethodPost, "/finance/payables/missing/pay", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Act
	s.router.ServeHTTP(w, req)

	// Assert
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"detail":"Payable not found"}`, w.Body.String())
}

func BenchmarkFinanceHandler_CashFlow(b *testing.B) {
	gin.SetMode(gin.TestMode)
	svc := new(MockFinanceService)
	from := domain.NewDate(2030, time.January, 1)
	to := domain.NewDate(2030, time.January, 31)
	svc.On("CashFlow", mock.Anything, mock.Anything, from, to).
		Return(domain.NewCashFlowSummary(from, to, decimal.RequireFromString("1000"), decimal.Zero), nil)

	handler := NewFinanceHandler(svc)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(string(utils.PrincipalKey), domain.Principal{UserID: "owner-1", TenantID: "sub-a", Role: domain.RoleOwner})
	})
	router.GET("/finance/cashflow", handler.CashFlow)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/finance/cashflow?from_date=2030-01-01&to_date=2030-01-31", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}
