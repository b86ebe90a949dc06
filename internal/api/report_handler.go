package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type ReportService interface {
	CostReport(ctx context.Context, scope tenant.Scope, req service.CostReportRequest) (domain.CostReport, error)
	ExportCostReport(ctx context.Context, scope tenant.Scope, req service.CostReportRequest) (string, domain.CostReport, error)
}

type ReportHandler struct {
	*BaseHandler
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{
		BaseHandler: &BaseHandler{},
		service:     service,
	}
}

func toServiceRequest(r dto.CostReportRequest) service.CostReportRequest {
	tipo, ref, from, to := r.Period()
	return service.CostReportRequest{Tipo: tipo, Referencia: ref, From: from, To: to}
}

// queryReport reads the report selection from the query string.
func queryReport(c *gin.Context) (service.CostReportRequest, error) {
	tipo := c.Query("tipo")
	if tipo == "" {
		return service.CostReportRequest{}, invalidField("tipo", "is required")
	}
	ref, err := queryDate(c, "referencia")
	if err != nil {
		return service.CostReportRequest{}, err
	}
	from, err := queryDate(c, "data_inicio")
	if err != nil {
		return service.CostReportRequest{}, err
	}
	to, err := queryDate(c, "data_fim")
	if err != nil {
		return service.CostReportRequest{}, err
	}
	return service.CostReportRequest{Tipo: domain.ReportType(tipo), Referencia: ref, From: from, To: to}, nil
}

// CostReport godoc
// @Summary Cost report
// @Description Totals of fixed, variable and clinical costs plus supplies used in the period. MENSAL, TRIMESTRAL and ANUAL take a reference date; CUSTOMIZADO takes data_inicio and data_fim.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param tipo query string true "Report type" Enums(MENSAL, TRIMESTRAL, ANUAL, CUSTOMIZADO)
// @Param referencia query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Param data_inicio query string false "Start date for CUSTOMIZADO"
// @Param data_fim query string false "End date for CUSTOMIZADO"
// @Success 200 {object} dto.CostReportResponse
// @Failure 400 {object} dto.Error
// @Router /reports/costs [get]
func (h *ReportHandler) CostReport(c *gin.Context) {
	req, err := queryReport(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	report, err := h.service.CostReport(h.RequestCtx(c), scope, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCostReport(report))
}

// ExportCostReport godoc
// @Summary Export a cost report
// @Description Builds the report and stores it as a JSON document in the report archive.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CostReportRequest true "Report selection"
// @Success 201 {object} dto.CostReportExportResponse
// @Failure 400 {object} dto.Error
// @Router /reports/costs/export [post]
func (h *ReportHandler) ExportCostReport(c *gin.Context) {
	req, err := bindJSON[dto.CostReportRequest](c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	key, report, err := h.service.ExportCostReport(h.RequestCtx(c), scope, toServiceRequest(req))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CostReportExportResponse{Key: key, Report: dto.FromCostReport(report)})
}

func (h *ReportHandler) mount(g *gin.RouterGroup, gd guards) {
	g.GET("/costs", with(gd.read, h.CostReport)...)
	g.POST("/costs/export", with(gd.write, h.ExportCostReport)...)
}
