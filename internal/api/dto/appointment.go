package dto

import (
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type AppointmentFields struct {
	PatientID   string    `json:"patient_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProviderID  string    `json:"provider_id" binding:"max=64" example:"dr-ana"`
	ServiceName string    `json:"service_name" binding:"max=255" example:"Limpeza"`
	StartTime   time.Time `json:"start_time" binding:"required" example:"2025-05-20T14:00:00Z"`
	EndTime     time.Time `json:"end_time" binding:"required" example:"2025-05-20T15:00:00Z"`
	Notes       string    `json:"notes"`
}

type CreateAppointmentRequest struct {
	AppointmentFields
}

func (r CreateAppointmentRequest) ToDraft() domain.AppointmentDraft {
	return domain.AppointmentDraft(r.AppointmentFields)
}

type UpdateAppointmentRequest struct {
	ProviderID  *string    `json:"provider_id" binding:"omitempty,max=64"`
	ServiceName *string    `json:"service_name" binding:"omitempty,max=255"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Notes       *string    `json:"notes"`
}

func (r UpdateAppointmentRequest) ToPatch() domain.AppointmentPatch {
	return domain.AppointmentPatch(r)
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"max=500" example:"patient asked to cancel"`
}

type RescheduleAppointmentRequest struct {
	StartTime time.Time `json:"start_time" binding:"required" example:"2025-05-21T14:00:00Z"`
	EndTime   time.Time `json:"end_time" binding:"required" example:"2025-05-21T15:00:00Z"`
}

type AppointmentResponse struct {
	TenantMeta
	AppointmentFields
	Status domain.AppointmentStatus `json:"status" swaggertype:"string" example:"scheduled"`
}

func FromAppointment(a *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		TenantMeta: tenantMetaOf(a.TenantBase),
		AppointmentFields: AppointmentFields{
			PatientID:   a.PatientID,
			ProviderID:  a.ProviderID,
			ServiceName: a.ServiceName,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Notes:       a.Notes,
		},
		Status: a.Status,
	}
}
