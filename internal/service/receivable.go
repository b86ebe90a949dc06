package service

import (
	"context"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// ownPatient fails with a patient_id field error unless patientID is an
// active patient of tenantID.
func ownPatient(ctx context.Context, patients repository.Store[domain.Patient], scope tenant.Scope, tenantID, patientID string) error {
	patient, err := patients.GetByID(ctx, scope, patientID)
	if domain.IsNotFound(err) || (err == nil && patient.SubscriberID != tenantID) {
		return domain.FieldError("patient_id", "patient not found")
	}
	return err
}

// ReceivableService keeps the optional patient link inside the receivable's
// own tenant.
type ReceivableService struct {
	*Resource[domain.Receivable, domain.ReceivableDraft, domain.ReceivablePatch]
	receivables repository.Store[domain.Receivable]
	patients    repository.Store[domain.Patient]
}

func NewReceivableService(repo repository.Repository) *ReceivableService {
	return &ReceivableService{
		Resource:    NewResource[domain.Receivable, domain.ReceivableDraft, domain.ReceivablePatch](repo.Receivables()),
		receivables: repo.Receivables(),
		patients:    repo.Patients(),
	}
}

func (s *ReceivableService) Create(ctx context.Context, scope tenant.Scope, draft domain.ReceivableDraft) (*domain.Receivable, error) {
	if draft.PatientID != nil && *draft.PatientID != "" {
		if err := ownPatient(ctx, s.patients, scope, scope.TenantID(), *draft.PatientID); err != nil {
			return nil, err
		}
	}
	return s.Resource.Create(ctx, scope, draft)
}

// Update checks a new patient against the tenant that owns the receivable,
// which differs from the caller's for operators.
func (s *ReceivableService) Update(ctx context.Context, scope tenant.Scope, id string, patch domain.ReceivablePatch) (*domain.Receivable, error) {
	return s.receivables.Update(ctx, scope, id, func(r *domain.Receivable) error {
		if patch.PatientID != nil && *patch.PatientID != "" {
			if err := ownPatient(ctx, s.patients, scope, r.SubscriberID, *patch.PatientID); err != nil {
				return err
			}
		}
		return patch.Apply(r)
	})
}
