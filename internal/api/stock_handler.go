package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type StockService interface {
	RegisterMovement(ctx context.Context, scope tenant.Scope, insumoID string, tipo domain.MovementType, quantidade int, motivo, usuarioID string) (*service.MovementResult, error)
	ListMovements(ctx context.Context, scope tenant.Scope, insumoID string, page repository.Pagination) (*repository.Page[domain.StockMovement], error)
	LowStock(ctx context.Context, scope tenant.Scope, page repository.Pagination) (*repository.Page[domain.Insumo], error)
}

// StockRecorder counts movements by type; middleware.Metrics implements it.
type StockRecorder interface {
	RecordStockMovement(tipo string)
}

type StockHandler struct {
	*BaseHandler
	service   StockService
	movements StockRecorder
}

func NewStockHandler(service StockService, movements StockRecorder) *StockHandler {
	return &StockHandler{
		BaseHandler: &BaseHandler{},
		service:     service,
		movements:   movements,
	}
}

// RegisterMovement godoc
// @Summary Register a stock movement
// @Description Adds (entrada) or removes (saida) units. A saida larger than the current stock is rejected and nothing changes.
// @Tags insumos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Insumo ID"
// @Param body body dto.StockMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResultResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /insumos/{id}/movimentacoes [post]
func (h *StockHandler) RegisterMovement(c *gin.Context) {
	req, err := bindJSON[dto.StockMovementRequest](c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}
	p, _ := h.Principal(c)

	result, err := h.service.RegisterMovement(h.RequestCtx(c), scope, c.Param("id"),
		domain.MovementType(req.Tipo), req.Quantidade, req.Motivo, p.UserID)
	if err != nil {
		h.notFoundAs(c, err)
		return
	}
	h.movements.RecordStockMovement(req.Tipo)

	c.JSON(http.StatusCreated, dto.MovementResultResponse{
		Insumo:       dto.FromInsumo(result.Insumo),
		Movimentacao: dto.FromStockMovement(result.Movement),
	})
}

// ListMovements godoc
// @Summary Movement ledger of an insumo
// @Tags insumos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Insumo ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.PageResponse[dto.StockMovementResponse]
// @Failure 404 {object} dto.Error
// @Router /insumos/{id}/movimentacoes [get]
func (h *StockHandler) ListMovements(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	result, err := h.service.ListMovements(h.RequestCtx(c), scope, c.Param("id"), page)
	if err != nil {
		h.notFoundAs(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, dto.FromStockMovement))
}

// LowStock godoc
// @Summary Insumos at or below their minimum stock
// @Tags insumos
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.PageResponse[dto.InsumoResponse]
// @Router /insumos/estoque-baixo [get]
func (h *StockHandler) LowStock(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	result, err := h.service.LowStock(h.RequestCtx(c), scope, page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, dto.FromInsumo))
}

func (h *StockHandler) notFoundAs(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Error{Detail: "Insumo not found"})
		return
	}
	h.respondError(c, err)
}

func (h *StockHandler) mount(g *gin.RouterGroup, gd guards) {
	g.GET("/estoque-baixo", with(gd.read, h.LowStock)...)
	g.POST("/:id/movimentacoes", with(gd.write, h.RegisterMovement)...)
	g.GET("/:id/movimentacoes", with(gd.read, h.ListMovements)...)
}
