package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type FinanceService interface {
	MarkPayablePaid(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Payable, error)
	MarkReceivableReceived(ctx context.Context, scope tenant.Scope, id string, on domain.Date) (*domain.Receivable, error)
	CashFlow(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.CashFlowSummary, error)
	Profit(ctx context.Context, scope tenant.Scope, from, to domain.Date) (domain.ProfitCalculation, error)
}

type FinanceHandler struct {
	*BaseHandler
	service FinanceService
	today   func() domain.Date
}

func NewFinanceHandler(service FinanceService) *FinanceHandler {
	return &FinanceHandler{
		BaseHandler: &BaseHandler{},
		service:     service,
		today:       domain.Today,
	}
}

// settleDate reads the optional body of the pay and receive routes.
func (h *FinanceHandler) settleDate(c *gin.Context) (domain.Date, bool) {
	var req dto.SettleRequest
	if c.Request.ContentLength != 0 {
		body, err := bindJSON[dto.SettleRequest](c)
		if err != nil {
			h.bindError(c, err)
			return domain.Date{}, false
		}
		req = body
	}
	if req.Date == nil || req.Date.IsZero() {
		return h.today(), true
	}
	return *req.Date, true
}

func (h *FinanceHandler) notFoundAs(c *gin.Context, resource string, err error) {
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Error{Detail: resource + " not found"})
		return
	}
	h.respondError(c, err)
}

// PayPayable godoc
// @Summary Mark a bill as paid
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payable ID"
// @Param body body dto.SettleRequest false "Payment date, defaults to today"
// @Success 200 {object} dto.PayableResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /finance/payables/{id}/pay [post]
func (h *FinanceHandler) PayPayable(c *gin.Context) {
	on, ok := h.settleDate(c)
	if !ok {
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	payable, err := h.service.MarkPayablePaid(h.RequestCtx(c), scope, c.Param("id"), on)
	if err != nil {
		h.notFoundAs(c, "Payable", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPayable(payable))
}

// ReceiveReceivable godoc
// @Summary Mark a receivable as received
// @Tags finance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Receivable ID"
// @Param body body dto.SettleRequest false "Receive date, defaults to today"
// @Success 200 {object} dto.ReceivableResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /finance/receivables/{id}/receive [post]
func (h *FinanceHandler) ReceiveReceivable(c *gin.Context) {
	on, ok := h.settleDate(c)
	if !ok {
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	receivable, err := h.service.MarkReceivableReceived(h.RequestCtx(c), scope, c.Param("id"), on)
	if err != nil {
		h.notFoundAs(c, "Receivable", err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReceivable(receivable))
}

// period reads a required pair of date parameters.
func (h *FinanceHandler) period(c *gin.Context, fromParam, toParam string) (domain.Date, domain.Date, bool) {
	p := domain.Problems{}
	from, err := queryDate(c, fromParam)
	p.Check(err == nil, fromParam, "must be a date in YYYY-MM-DD format")
	p.Check(c.Query(fromParam) != "", fromParam, "is required")
	to, err := queryDate(c, toParam)
	p.Check(err == nil, toParam, "must be a date in YYYY-MM-DD format")
	p.Check(c.Query(toParam) != "", toParam, "is required")
	if err := p.Err(); err != nil {
		h.respondError(c, err)
		return domain.Date{}, domain.Date{}, false
	}
	return from, to, true
}

// CashFlow godoc
// @Summary Cash flow for a period
// @Description Money actually received minus money actually paid between the two dates, inclusive.
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param from_date query string true "Start date (YYYY-MM-DD)"
// @Param to_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} dto.Error
// @Router /finance/cashflow [get]
func (h *FinanceHandler) CashFlow(c *gin.Context) {
	from, to, ok := h.period(c, "from_date", "to_date")
	if !ok {
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	summary, err := h.service.CashFlow(h.RequestCtx(c), scope, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCashFlow(summary))
}

// Profit godoc
// @Summary Profit for a period
// @Description Gross profit is revenue minus clinical costs; net profit is revenue minus every cost.
// @Tags finance
// @Produce json
// @Security BearerAuth
// @Param period_from query string true "Start date (YYYY-MM-DD)"
// @Param period_to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.ProfitResponse
// @Failure 400 {object} dto.Error
// @Router /finance/profit [get]
func (h *FinanceHandler) Profit(c *gin.Context) {
	from, to, ok := h.period(c, "period_from", "period_to")
	if !ok {
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	profit, err := h.service.Profit(h.RequestCtx(c), scope, from, to)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProfit(profit))
}

func (h *FinanceHandler) mount(g *gin.RouterGroup, gd guards) {
	g.GET("/cashflow", with(gd.read, h.CashFlow)...)
	g.GET("/profit", with(gd.read, h.Profit)...)
}
