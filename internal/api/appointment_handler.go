package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/pkg/utils"
)

type AppointmentService interface {
	ResourceService[domain.Appointment, domain.AppointmentDraft, domain.AppointmentPatch]
	Confirm(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, scope tenant.Scope, id, reason string) (*domain.Appointment, error)
	Complete(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error)
	Reschedule(ctx context.Context, scope tenant.Scope, id string, start, end time.Time) (*domain.Appointment, error)
}

// AppointmentHandler adds the status transitions to the collection routes.
type AppointmentHandler struct {
	*resourceHandler[domain.Appointment, domain.AppointmentDraft, domain.AppointmentPatch, dto.AppointmentResponse]
	service AppointmentService
}

func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		resourceHandler: newResourceHandler(
			"Appointment",
			ResourceService[domain.Appointment, domain.AppointmentDraft, domain.AppointmentPatch](service),
			bindDraft[dto.CreateAppointmentRequest, domain.AppointmentDraft],
			bindPatch[dto.UpdateAppointmentRequest, domain.AppointmentPatch],
			dto.FromAppointment,
			appointmentFilters,
		),
		service: service,
	}
}

func appointmentFilters(c *gin.Context) ([]repository.Filter, error) {
	var filters []repository.Filter
	if v := c.Query("status"); v != "" {
		if !domain.IsValidAppointmentStatus(v) {
			return nil, invalidField("status", "invalid status")
		}
		filters = append(filters, repository.Eq("status", v))
	}
	filters, err := idFilter(c, "patient_id", "patient_id", filters)
	if err != nil {
		return nil, err
	}
	for _, bound := range []struct {
		param string
		upper bool
	}{{"from", false}, {"to", true}} {
		raw := c.Query(bound.param)
		if raw == "" {
			continue
		}
		t, err := utils.ParseTimeBound(raw, bound.upper)
		if err != nil {
			return nil, invalidField(bound.param, "must be a date (YYYY-MM-DD) or an RFC3339 timestamp")
		}
		if bound.upper {
			filters = append(filters, repository.Lte("start_time", t))
		} else {
			filters = append(filters, repository.Gte("start_time", t))
		}
	}
	return filters, nil
}

func (h *AppointmentHandler) transition(c *gin.Context, op func(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error)) {
	h.byID(c, op)
}

// Confirm godoc
// @Summary Confirm an appointment
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /appointments/{id}/confirm [post]
func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

// Complete godoc
// @Summary Mark an appointment as completed
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /appointments/{id}/complete [post]
func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param body body dto.CancelAppointmentRequest false "Reason"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req dto.CancelAppointmentRequest
	if c.Request.ContentLength != 0 {
		body, err := bindJSON[dto.CancelAppointmentRequest](c)
		if err != nil {
			h.bindError(c, err)
			return
		}
		req = body
	}
	h.transition(c, func(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error) {
		return h.service.Cancel(ctx, scope, id, req.Reason)
	})
}

// Reschedule godoc
// @Summary Move an appointment
// @Description A confirmed appointment goes back to scheduled.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param body body dto.RescheduleAppointmentRequest true "New times"
// @Success 200 {object} dto.AppointmentResponse
// @Failure 400 {object} dto.Error
// @Failure 404 {object} dto.Error
// @Router /appointments/{id}/reschedule [post]
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	req, err := bindJSON[dto.RescheduleAppointmentRequest](c)
	if err != nil {
		h.bindError(c, err)
		return
	}
	h.transition(c, func(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error) {
		return h.service.Reschedule(ctx, scope, id, req.StartTime, req.EndTime)
	})
}

func (h *AppointmentHandler) mount(g *gin.RouterGroup, gd guards) {
	h.resourceHandler.mount(g, gd)
	g.POST("/:id/confirm", with(gd.write, h.Confirm)...)
	g.POST("/:id/cancel", with(gd.write, h.Cancel)...)
	g.POST("/:id/complete", with(gd.write, h.Complete)...)
	g.POST("/:id/reschedule", with(gd.write, h.Reschedule)...)
}
