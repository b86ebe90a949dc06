package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

// CatalogService is the storefront read before sign up.
type CatalogService interface {
	Plans(ctx context.Context, query repository.Query) (*repository.Page[domain.Plan], error)
	Plan(ctx context.Context, id string) (*domain.Plan, []service.PlanOffer, error)
	Segments(ctx context.Context, query repository.Query) (*repository.Page[domain.Segment], error)
}

type OnboardingService interface {
	Onboard(ctx context.Context, in service.NewSubscriber) (*domain.Subscriber, error)
}

// PublicHandler serves the unauthenticated routes. There is no principal, so
// nothing here may touch tenant data.
type PublicHandler struct {
	*BaseHandler
	catalog    CatalogService
	onboarding OnboardingService
}

func NewPublicHandler(catalog CatalogService, onboarding OnboardingService) *PublicHandler {
	return &PublicHandler{BaseHandler: &BaseHandler{}, catalog: catalog, onboarding: onboarding}
}

func (h *PublicHandler) mount(g *gin.RouterGroup) {
	g.GET("/plans", h.Plans)
	g.GET("/plans/:id", h.Plan)
	g.GET("/segments", h.Segments)
	g.POST("/subscribers", h.Signup)
}

func publicPlanFilters(c *gin.Context) ([]repository.Filter, error) {
	var filters []repository.Filter
	if v := strings.TrimSpace(c.Query("nome")); v != "" {
		filters = append(filters, repository.Contains("nome", v))
	}
	return idFilter(c, "segment_id", "segment_id", filters)
}

// Plans godoc
// @Summary List the plans open for sign up
// @Tags public
// @Produce json
// @Param nome query string false "Name contains"
// @Param segment_id query string false "Segment ID"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.PlanResponse]
// @Failure 400 {object} dto.Error
// @Router /public/plans [get]
func (h *PublicHandler) Plans(c *gin.Context) {
	page, ok := h.pagination(c)
	if !ok {
		return
	}
	filters, err := publicPlanFilters(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.catalog.Plans(c.Request.Context(), repository.Query{Page: page, Filters: filters})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, dto.FromPlan))
}

// Plan godoc
// @Summary Get a public plan with its modules
// @Tags public
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.PlanDetailResponse
// @Failure 404 {object} dto.Error
// @Router /public/plans/{id} [get]
func (h *PublicHandler) Plan(c *gin.Context) {
	plan, offers, err := h.catalog.Plan(c.Request.Context(), c.Param("id"))
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Error{Detail: "Plan not found"})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromPlanDetail(plan, offers))
}

// Segments godoc
// @Summary List the active segments
// @Tags public
// @Produce json
// @Param nome query string false "Name contains"
// @Param page query int false "Page"
// @Param size query int false "Page size"
// @Success 200 {object} dto.PageResponse[dto.SegmentResponse]
// @Router /public/segments [get]
func (h *PublicHandler) Segments(c *gin.Context) {
	page, ok := h.pagination(c)
	if !ok {
		return
	}
	query := repository.Query{Page: page}
	if v := strings.TrimSpace(c.Query("nome")); v != "" {
		query.Filters = append(query.Filters, repository.Contains("nome", v))
	}

	result, err := h.catalog.Segments(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, dto.FromSegment))
}

// Signup godoc
// @Summary Sign up a clinic and its owner
// @Tags public
// @Accept json
// @Produce json
// @Param body body dto.SignupRequest true "Clinic and owner"
// @Success 201 {object} dto.SignupResponse
// @Failure 400 {object} dto.Error
// @Failure 409 {object} dto.Error
// @Router /public/subscribers [post]
func (h *PublicHandler) Signup(c *gin.Context) {
	in, err := bindDraft[dto.SignupRequest, service.NewSubscriber](c)
	if err != nil {
		h.bindError(c, err)
		return
	}

	sub, err := h.onboarding.Onboard(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, renameFields(err, dto.SignupFields))
		return
	}

	c.JSON(http.StatusCreated, dto.SignupResponse{Message: "subscriber created", ID: sub.ID})
}

// renameFields rewrites the field keys of a validation error; keys missing
// from names are kept.
func renameFields(err error, names map[string]string) error {
	var de *domain.Error
	if !errors.As(err, &de) || len(de.Fields) == 0 {
		return err
	}
	fields := make(map[string]string, len(de.Fields))
	for k, v := range de.Fields {
		if renamed, ok := names[k]; ok {
			k = renamed
		}
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}
	return &domain.Error{Kind: de.Kind, Message: de.Message, Fields: fields, Err: de.Err}
}
