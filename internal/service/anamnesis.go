package service

import (
	"context"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

var errAnamnesisNotFound = domain.NewNotFoundError("anamnesis")

// AnamnesisService serves the intake records nested under a patient. Every
// lookup is bound to the patient in the path; a record of another patient is
// reported as missing.
type AnamnesisService struct {
	anamneses repository.Store[domain.Anamnesis]
	patients  repository.Store[domain.Patient]
}

func NewAnamnesisService(repo repository.Repository) *AnamnesisService {
	return &AnamnesisService{
		anamneses: repo.Anamneses(),
		patients:  repo.Patients(),
	}
}

func (s *AnamnesisService) patient(ctx context.Context, scope tenant.Scope, patientID string) (*domain.Patient, error) {
	p, err := s.patients.GetByID(ctx, scope, patientID)
	if domain.IsNotFound(err) {
		return nil, domain.NewNotFoundError("patient")
	}
	return p, err
}

func (s *AnamnesisService) Create(ctx context.Context, scope tenant.Scope, patientID string, draft domain.AnamnesisDraft) (*domain.Anamnesis, error) {
	p, err := s.patient(ctx, scope, patientID)
	if err != nil {
		return nil, err
	}
	draft.PatientID = p.ID
	a, err := draft.Build()
	if err != nil {
		return nil, err
	}
	// the record lives with the patient, even when an operator writes it
	if err := s.anamneses.Create(ctx, tenant.For(p.SubscriberID), a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnamnesisService) Get(ctx context.Context, scope tenant.Scope, patientID, id string) (*domain.Anamnesis, error) {
	a, err := s.anamneses.GetByID(ctx, scope, id)
	if domain.IsNotFound(err) || (err == nil && a.PatientID != patientID) {
		return nil, errAnamnesisNotFound
	}
	return a, err
}

func (s *AnamnesisService) Update(ctx context.Context, scope tenant.Scope, patientID, id string, patch domain.AnamnesisPatch) (*domain.Anamnesis, error) {
	a, err := s.anamneses.Update(ctx, scope, id, func(a *domain.Anamnesis) error {
		if a.PatientID != patientID {
			return errAnamnesisNotFound
		}
		return patch.Apply(a)
	})
	if domain.IsNotFound(err) {
		return nil, errAnamnesisNotFound
	}
	return a, err
}

func (s *AnamnesisService) Delete(ctx context.Context, scope tenant.Scope, patientID, id string) error {
	if _, err := s.Get(ctx, scope, patientID, id); err != nil {
		return err
	}
	return s.anamneses.Delete(ctx, scope, id)
}

// List pages the patient's records, oldest first.
func (s *AnamnesisService) List(ctx context.Context, scope tenant.Scope, patientID string, page repository.Pagination) (*repository.Page[domain.Anamnesis], error) {
	if _, err := s.patient(ctx, scope, patientID); err != nil {
		return nil, err
	}
	items, total, err := s.anamneses.List(ctx, scope, repository.Query{
		Page:    page,
		Filters: []repository.Filter{repository.Eq("patient_id", patientID)},
	})
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, page), nil
}
