package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

type SubscriberService interface {
	ResourceService[domain.Subscriber, service.NewSubscriber, domain.SubscriberPatch]
	Mine(ctx context.Context, p domain.Principal) (*domain.Subscriber, error)
}

type SubscriberHandler struct {
	*resourceHandler[domain.Subscriber, service.NewSubscriber, domain.SubscriberPatch, dto.SubscriberResponse]
	service SubscriberService
}

func NewSubscriberHandler(svc SubscriberService) *SubscriberHandler {
	return &SubscriberHandler{
		resourceHandler: newResourceHandler(
			"Subscriber",
			ResourceService[domain.Subscriber, service.NewSubscriber, domain.SubscriberPatch](svc),
			bindDraft[dto.CreateSubscriberRequest, service.NewSubscriber],
			bindPatch[dto.UpdateSubscriberRequest, domain.SubscriberPatch],
			dto.FromSubscriber,
			nil,
		),
		service: svc,
	}
}

// Mine godoc
// @Summary Subscriber of the current user
// @Tags subscribers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriberResponse
// @Failure 401 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /subscribers/me [get]
func (h *SubscriberHandler) Mine(c *gin.Context) {
	p, ok := h.Principal(c)
	if !ok {
		return
	}

	subscriber, err := h.service.Mine(h.RequestCtx(c), p)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromSubscriber(subscriber))
}

// mount registers /me on its own: any authenticated user may read their
// subscriber, the collection routes are for operators.
func (h *SubscriberHandler) mount(g *gin.RouterGroup, operators []gin.HandlerFunc) {
	g.GET("/me", h.Mine)
	h.resourceHandler.mount(g, guards{read: operators, write: operators, audit: operators})
}
