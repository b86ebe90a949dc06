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

// ResourceService is the CRUD use case a collection route drives.
// service.Resource implements it, as do the services that embed it.
type ResourceService[T any, D any, P any] interface {
	Create(ctx context.Context, scope tenant.Scope, draft D) (*T, error)
	Get(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	Audit(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	Update(ctx context.Context, scope tenant.Scope, id string, patch P) (*T, error)
	Delete(ctx context.Context, scope tenant.Scope, id string) error
	Activate(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	Deactivate(ctx context.Context, scope tenant.Scope, id string) (*T, error)
	List(ctx context.Context, scope tenant.Scope, query repository.Query) (*repository.Page[T], error)
}

// filterFunc turns query parameters into list filters.
type filterFunc func(c *gin.Context) ([]repository.Filter, error)

// guards are the extra middleware per kind of access. Nil slices add nothing;
// create and remove fall back to write when unset.
type guards struct {
	read   []gin.HandlerFunc
	write  []gin.HandlerFunc
	create []gin.HandlerFunc
	remove []gin.HandlerFunc
	audit  []gin.HandlerFunc
}

func (gd guards) creating() []gin.HandlerFunc {
	if gd.create != nil {
		return gd.create
	}
	return gd.write
}

func (gd guards) removing() []gin.HandlerFunc {
	if gd.remove != nil {
		return gd.remove
	}
	return gd.write
}

// resourceHandler serves the standard collection routes for one entity.
type resourceHandler[T any, D any, P any, R any] struct {
	*BaseHandler
	resource     string
	service      ResourceService[T, D, P]
	decodeCreate func(*gin.Context) (D, error)
	decodeUpdate func(*gin.Context) (P, error)
	render       func(*T) R
	filters      filterFunc
}

func newResourceHandler[T any, D any, P any, R any](
	resource string,
	service ResourceService[T, D, P],
	decodeCreate func(*gin.Context) (D, error),
	decodeUpdate func(*gin.Context) (P, error),
	render func(*T) R,
	filters filterFunc,
) *resourceHandler[T, D, P, R] {
	return &resourceHandler[T, D, P, R]{
		BaseHandler:  &BaseHandler{},
		resource:     resource,
		service:      service,
		decodeCreate: decodeCreate,
		decodeUpdate: decodeUpdate,
		render:       render,
		filters:      filters,
	}
}

// fail names the resource in not-found answers.
func (h *resourceHandler[T, D, P, R]) fail(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, dto.Error{Detail: h.resource + " not found"})
		return
	}
	h.respondError(c, err)
}

func with(extra []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(extra)+1)
	out = append(out, extra...)
	return append(out, h)
}

// mount registers the collection routes on g.
func (h *resourceHandler[T, D, P, R]) mount(g *gin.RouterGroup, gd guards) {
	g.POST("", with(gd.creating(), h.Create)...)
	g.GET("", with(gd.read, h.List)...)
	g.GET("/:id", with(gd.read, h.Get)...)
	g.GET("/:id/audit", with(gd.audit, h.Audit)...)
	g.PUT("/:id", with(gd.write, h.Update)...)
	g.PATCH("/:id", with(gd.write, h.Update)...)
	g.DELETE("/:id", with(gd.removing(), h.Delete)...)
	g.PATCH("/:id/activate", with(gd.write, h.Activate)...)
	g.PATCH("/:id/deactivate", with(gd.write, h.Deactivate)...)
}

func (h *resourceHandler[T, D, P, R]) Create(c *gin.Context) {
	draft, err := h.decodeCreate(c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	entity, err := h.service.Create(h.RequestCtx(c), scope, draft)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.render(entity))
}

func (h *resourceHandler[T, D, P, R]) List(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}
	page, ok := h.pagination(c)
	if !ok {
		return
	}
	query := repository.Query{Page: page}
	if h.filters != nil {
		filters, err := h.filters(c)
		if err != nil {
			h.respondError(c, err)
			return
		}
		query.Filters = filters
	}

	result, err := h.service.List(h.RequestCtx(c), scope, query)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(result, h.render))
}

func (h *resourceHandler[T, D, P, R]) Get(c *gin.Context) {
	h.byID(c, h.service.Get)
}

// Audit returns the row even when it has been deactivated.
func (h *resourceHandler[T, D, P, R]) Audit(c *gin.Context) {
	h.byID(c, h.service.Audit)
}

func (h *resourceHandler[T, D, P, R]) Activate(c *gin.Context) {
	h.byID(c, h.service.Activate)
}

func (h *resourceHandler[T, D, P, R]) Deactivate(c *gin.Context) {
	h.byID(c, h.service.Deactivate)
}

func (h *resourceHandler[T, D, P, R]) byID(c *gin.Context, op func(context.Context, tenant.Scope, string) (*T, error)) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	entity, err := op(h.RequestCtx(c), scope, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.render(entity))
}

func (h *resourceHandler[T, D, P, R]) Update(c *gin.Context) {
	patch, err := h.decodeUpdate(c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	entity, err := h.service.Update(h.RequestCtx(c), scope, c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, h.render(entity))
}

func (h *resourceHandler[T, D, P, R]) Delete(c *gin.Context) {
	scope, ok := h.Scope(c)
	if !ok {
		return
	}

	if err := h.service.Delete(h.RequestCtx(c), scope, c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
