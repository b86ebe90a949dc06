package domain

import "strings"

// Anamnesis is a patient's intake record: the complaint that brought them in
// and the history a clinician needs before treating them.
type Anamnesis struct {
	TenantBase
	PatientID      string `gorm:"type:uuid;not null;index" json:"patient_id"`
	ChiefComplaint string `gorm:"type:text;not null" json:"chief_complaint"`
	MedicalHistory string `gorm:"type:text" json:"medical_history"`
	Allergies      string `gorm:"type:text" json:"allergies"`
	Medications    string `gorm:"type:text" json:"medications"`
	Notes          string `gorm:"type:text" json:"notes"`
}

func (Anamnesis) TableName() string {
	return "anamneses"
}

func (a *Anamnesis) validate() error {
	p := Problems{}
	p.Check(a.PatientID != "", "patient_id", "is required")
	a.ChiefComplaint = strings.TrimSpace(a.ChiefComplaint)
	if a.ChiefComplaint == "" {
		p.Add("chief_complaint", "is required")
	} else {
		checkLength(p, "chief_complaint", a.ChiefComplaint, 3, 0)
	}
	return p.Err()
}

type AnamnesisDraft struct {
	PatientID      string
	ChiefComplaint string
	MedicalHistory string
	Allergies      string
	Medications    string
	Notes          string
}

func (d AnamnesisDraft) Build() (*Anamnesis, error) {
	a := &Anamnesis{
		PatientID:      d.PatientID,
		ChiefComplaint: d.ChiefComplaint,
		MedicalHistory: d.MedicalHistory,
		Allergies:      d.Allergies,
		Medications:    d.Medications,
		Notes:          d.Notes,
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// AnamnesisPatch cannot move a record to another patient.
type AnamnesisPatch struct {
	ChiefComplaint *string
	MedicalHistory *string
	Allergies      *string
	Medications    *string
	Notes          *string
}

func (p AnamnesisPatch) Apply(a *Anamnesis) error {
	next := *a
	setIf(&next.ChiefComplaint, p.ChiefComplaint)
	setIf(&next.MedicalHistory, p.MedicalHistory)
	setIf(&next.Allergies, p.Allergies)
	setIf(&next.Medications, p.Medications)
	setIf(&next.Notes, p.Notes)
	if err := next.validate(); err != nil {
		return err
	}
	*a = next
	return nil
}
