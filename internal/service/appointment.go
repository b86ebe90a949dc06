package service

import (
	"context"
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

type AppointmentService struct {
	*Resource[domain.Appointment, domain.AppointmentDraft, domain.AppointmentPatch]
	appointments repository.Store[domain.Appointment]
	patients     repository.Store[domain.Patient]
	now          func() time.Time
}

func NewAppointmentService(repo repository.Repository) *AppointmentService {
	return &AppointmentService{
		Resource:     NewResource[domain.Appointment, domain.AppointmentDraft, domain.AppointmentPatch](repo.Appointments()),
		appointments: repo.Appointments(),
		patients:     repo.Patients(),
		now:          time.Now,
	}
}

// Create books an appointment for an active patient of the caller's own tenant.
func (s *AppointmentService) Create(ctx context.Context, scope tenant.Scope, draft domain.AppointmentDraft) (*domain.Appointment, error) {
	if err := ownPatient(ctx, s.patients, scope, scope.TenantID(), draft.PatientID); err != nil {
		return nil, err
	}
	return s.Resource.Create(ctx, scope, draft)
}

func (s *AppointmentService) Confirm(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error) {
	return s.appointments.Update(ctx, scope, id, func(a *domain.Appointment) error {
		return a.Confirm(s.now())
	})
}

func (s *AppointmentService) Cancel(ctx context.Context, scope tenant.Scope, id, reason string) (*domain.Appointment, error) {
	return s.appointments.Update(ctx, scope, id, func(a *domain.Appointment) error {
		return a.Cancel(reason, s.now())
	})
}

func (s *AppointmentService) Complete(ctx context.Context, scope tenant.Scope, id string) (*domain.Appointment, error) {
	return s.appointments.Update(ctx, scope, id, func(a *domain.Appointment) error {
		return a.Complete(s.now())
	})
}

func (s *AppointmentService) Reschedule(ctx context.Context, scope tenant.Scope, id string, start, end time.Time) (*domain.Appointment, error) {
	return s.appointments.Update(ctx, scope, id, func(a *domain.Appointment) error {
		return a.Reschedule(start, end, s.now())
	})
}
