package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled: {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled},
}

func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// Terminal statuses accept no further transitions or reschedules.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCancelled || s == AppointmentCompleted
}

type Appointment struct {
	TenantBase
	PatientID   string            `gorm:"type:uuid;not null;index" json:"patient_id"`
	ProviderID  string            `gorm:"type:varchar(64)" json:"provider_id"`
	ServiceName string            `gorm:"type:varchar(255)" json:"service_name"`
	StartTime   time.Time         `gorm:"type:timestamp with time zone;not null;index" json:"start_time"`
	EndTime     time.Time         `gorm:"type:timestamp with time zone;not null" json:"end_time"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Notes       string            `gorm:"type:text" json:"notes"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) validate() error {
	p := Problems{}
	p.Check(a.PatientID != "", "patient_id", "is required")
	p.Check(!a.StartTime.IsZero(), "start_time", "is required")
	p.Check(!a.EndTime.IsZero(), "end_time", "is required")
	if !a.StartTime.IsZero() && !a.EndTime.IsZero() {
		p.Check(a.EndTime.After(a.StartTime), "end_time", "must be after start_time")
	}
	p.Check(IsValidAppointmentStatus(string(a.Status)), "status", "invalid status")
	a.ServiceName = strings.TrimSpace(a.ServiceName)
	checkLength(p, "service_name", a.ServiceName, 0, 255)
	return p.Err()
}

func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	return slices.Contains(appointmentTransitions[a.Status], next)
}

func (a *Appointment) transition(next AppointmentStatus, now time.Time) error {
	if !a.CanTransitionTo(next) {
		return FieldError("status", fmt.Sprintf("cannot change appointment from %s to %s", a.Status, next))
	}
	a.Status = next
	a.Touch(now)
	return nil
}

func (a *Appointment) Confirm(now time.Time) error {
	return a.transition(AppointmentConfirmed, now)
}

// Cancel is allowed from scheduled or confirmed. The reason, when given, is
// appended to the notes.
func (a *Appointment) Cancel(reason string, now time.Time) error {
	if err := a.transition(AppointmentCancelled, now); err != nil {
		return err
	}
	if reason = strings.TrimSpace(reason); reason != "" {
		a.Notes = strings.TrimSpace(a.Notes + "\nCancelamento: " + reason)
	}
	return nil
}

func (a *Appointment) Complete(now time.Time) error {
	return a.transition(AppointmentCompleted, now)
}

// Reschedule moves the appointment; a confirmed appointment goes back to scheduled.
func (a *Appointment) Reschedule(start, end time.Time, now time.Time) error {
	if a.Status.Terminal() {
		return FieldError("status", fmt.Sprintf("cannot reschedule a %s appointment", a.Status))
	}
	next := *a
	next.StartTime = start
	next.EndTime = end
	next.Status = AppointmentScheduled
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch(now)
	*a = next
	return nil
}

type AppointmentDraft struct {
	PatientID   string
	ProviderID  string
	ServiceName string
	StartTime   time.Time
	EndTime     time.Time
	Notes       string
}

func (d AppointmentDraft) Build() (*Appointment, error) {
	a := &Appointment{
		PatientID:   d.PatientID,
		ProviderID:  d.ProviderID,
		ServiceName: d.ServiceName,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
		Status:      AppointmentScheduled,
		Notes:       d.Notes,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// AppointmentPatch edits descriptive fields. Times go through Reschedule and
// status through the transition methods.
type AppointmentPatch struct {
	ProviderID  *string
	ServiceName *string
	StartTime   *time.Time
	EndTime     *time.Time
	Notes       *string
}

func (p AppointmentPatch) Apply(a *Appointment) error {
	next := *a
	if p.StartTime != nil || p.EndTime != nil {
		start, end := next.StartTime, next.EndTime
		setIf(&start, p.StartTime)
		setIf(&end, p.EndTime)
		if err := next.Reschedule(start, end, next.UpdatedAt); err != nil {
			return err
		}
	}
	setIf(&next.ProviderID, p.ProviderID)
	setIf(&next.ServiceName, p.ServiceName)
	setIf(&next.Notes, p.Notes)
	if err := next.validate(); err != nil {
		return err
	}
	*a = next
	return nil
}
