package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type AnamnesisService interface {
	Create(ctx context.Context, scope tenant.Scope, patientID string, draft domain.AnamnesisDraft) (*domain.Anamnesis, error)
	Get(ctx context.Context, scope tenant.Scope, patientID, id string) (*domain.Anamnesis, error)
	Update(ctx context.Context, scope tenant.Scope, patientID, id string, patch domain.AnamnesisPatch) (*domain.Anamnesis, error)
	Delete(ctx context.Context, scope tenant.Scope, patientID, id string) error
	List(ctx context.Context, scope tenant.Scope, patientID string, page repository.Pagination) (*repository.Page[domain.Anamnesis], error)
}

// AnamnesisHandler serves the records nested under /patients/{id}. The path
// reuses the patient routes' :id wildcard for the patient.
type AnamnesisHandler struct {
	*BaseHandler
	service AnamnesisService
}

func NewAnamnesisHandler(service AnamnesisService) *AnamnesisHandler {
	return &AnamnesisHandler{BaseHandler: &BaseHandler{}, service: service}
}

func (h *AnamnesisHandler) mount(g *gin.RouterGroup, gd guards) {
	g.POST("/:id/anamneses", with(gd.creating(), h.Create)...)
	g.GET("/:id/anamneses", with(gd.read, h.List)...)
	g.GET("/:id/anamneses/:anamnesis_id", with(gd.read, h.Get)...)
	g.PUT("/:id/anamneses/:anamnesis_id", with(gd.write, h.Update)...)
	g.PATCH("/:id/anamneses/:anamnesis_id", with(gd.write, h.Update)...)
	g.DELETE("/:id/anamneses/:anamnesis_id", with(gd.removing(), h.Delete)...)
}

// Create godoc
// @Summary Record an anamnesis for a patient
// @Tags anamneses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param body body dto.CreateAnamnesisRequest true "Anamnesis"
// @Success 201 {object} dto.AnamnesisResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /patients/{id}/anamneses [post]
func (h *AnamnesisHandler) Create(c *gin.Context) {
	draft, err := bindDraft[dto.CreateAnamnesisRequest, domain.AnamnesisDraft](c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	a, err := h.service.Create(h.RequestCtx(c), scope, c.Param("id"), draft)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAnamnesis(a))
}

// List godoc
// @Summary List a patient's anamneses
// @Tags anamneses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.AnamnesisResponse]
// @Failure 404 {object} dto.Error
// @Router /patients/{id}/anamneses [get]
func (h *AnamnesisHandler) List(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}

	result, err := h.service.List(h.RequestCtx(c), scope, c.Param("id"), page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, dto.FromAnamnesis))
}

// Get godoc
// @Summary Get one anamnesis of a patient
// @Tags anamneses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param anamnesis_id path string true "Anamnesis ID"
// @Success 200 {object} dto.AnamnesisResponse
// @Failure 404 {object} dto.Error
// @Router /patients/{id}/anamneses/{anamnesis_id} [get]
func (h *AnamnesisHandler) Get(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	a, err := h.service.Get(h.RequestCtx(c), scope, c.Param("id"), c.Param("anamnesis_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnamnesis(a))
}

// Update godoc
// @Summary Update an anamnesis
// @Tags anamneses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param anamnesis_id path string true "Anamnesis ID"
// @Param body body dto.UpdateAnamnesisRequest true "Changes"
// @Success 200 {object} dto.AnamnesisResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /patients/{id}/anamneses/{anamnesis_id} [put]
func (h *AnamnesisHandler) Update(c *gin.Context) {
	patch, err := bindPatch[dto.UpdateAnamnesisRequest, domain.AnamnesisPatch](c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	a, err := h.service.Update(h.RequestCtx(c), scope, c.Param("id"), c.Param("anamnesis_id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAnamnesis(a))
}

// Delete godoc
// @Summary Delete an anamnesis
// @Tags anamneses
// @Security BearerAuth
// @Param id path string true "Patient ID"
// @Param anamnesis_id path string true "Anamnesis ID"
// @Success 204
// @Failure 404 {object} dto.Error
// @Router /patients/{id}/anamneses/{anamnesis_id} [delete]
func (h *AnamnesisHandler) Delete(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(h.RequestCtx(c), scope, c.Param("id"), c.Param("anamnesis_id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
