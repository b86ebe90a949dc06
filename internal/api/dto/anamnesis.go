package dto

import "github.com/kingrain94/clinic-admin-api/internal/domain"

type AnamnesisFields struct {
	ChiefComplaint string `json:"chief_complaint" binding:"required,min=3" example:"Dor ao mastigar"`
	MedicalHistory string `json:"medical_history" example:"Hipertensão controlada"`
	Allergies      string `json:"allergies" example:"Penicilina"`
	Medications    string `json:"medications" example:"Losartana 50mg"`
	Notes          string `json:"notes"`
}

// CreateAnamnesisRequest takes the patient from the path.
type CreateAnamnesisRequest struct {
	AnamnesisFields
}

func (r CreateAnamnesisRequest) ToDraft() domain.AnamnesisDraft {
	return domain.AnamnesisDraft{
		ChiefComplaint: r.ChiefComplaint,
		MedicalHistory: r.MedicalHistory,
		Allergies:      r.Allergies,
		Medications:    r.Medications,
		Notes:          r.Notes,
	}
}

type UpdateAnamnesisRequest struct {
	ChiefComplaint *string `json:"chief_complaint" binding:"omitempty,min=3"`
	MedicalHistory *string `json:"medical_history"`
	Allergies      *string `json:"allergies"`
	Medications    *string `json:"medications"`
	Notes          *string `json:"notes"`
}

func (r UpdateAnamnesisRequest) ToPatch() domain.AnamnesisPatch {
	return domain.AnamnesisPatch(r)
}

type AnamnesisResponse struct {
	TenantMeta
	PatientID string `json:"patient_id"`
	AnamnesisFields
}

func FromAnamnesis(a *domain.Anamnesis) AnamnesisResponse {
	return AnamnesisResponse{
		TenantMeta: tenantMetaOf(a.TenantBase),
		PatientID:  a.PatientID,
		AnamnesisFields: AnamnesisFields{
			ChiefComplaint: a.ChiefComplaint,
			MedicalHistory: a.MedicalHistory,
			Allergies:      a.Allergies,
			Medications:    a.Medications,
			Notes:          a.Notes,
		},
	}
}
