package dto

import (
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

// SignupRequest is the self-service onboarding form: the clinic and the
// person who will own its account.
type SignupRequest struct {
	Name       string `json:"name" binding:"required,max=100" example:"Joana Prado"`
	ClinicName string `json:"clinic_name" binding:"required,max=255" example:"Clínica Sorriso"`
	Email      string `json:"email" binding:"required,email" example:"joana@sorriso.com.br"`
	Phone      string `json:"phone" example:"11987654321"`
	Document   string `json:"document" binding:"required" example:"11222333000181"`
	SegmentID  string `json:"segment_id" binding:"required,uuid"`
	PlanID     string `json:"plan_id" binding:"required,uuid"`
	Password   string `json:"password" binding:"required,min=8,max=72" example:"s3nh4-f0rte"`
}

func (r SignupRequest) ToDraft() service.NewSubscriber {
	segmentID, planID := r.SegmentID, r.PlanID
	return service.NewSubscriber{
		Subscriber: domain.SubscriberDraft{
			Nome:      r.ClinicName,
			Documento: r.Document,
			Email:     r.Email,
			Telefone:  r.Phone,
			SegmentID: &segmentID,
			PlanID:    &planID,
		},
		Owner: &service.NewOwner{Name: r.Name, Email: r.Email, Password: r.Password},
	}
}

// SignupFields maps domain field names back to the form's.
var SignupFields = map[string]string{
	"nome":           "clinic_name",
	"documento":      "document",
	"telefone":       "phone",
	"owner.name":     "name",
	"owner.email":    "email",
	"owner.password": "password",
}

type SignupResponse struct {
	Message string `json:"message" example:"subscriber created"`
	ID      string `json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
}

type PlanOfferResponse struct {
	ModuleID  string  `json:"module_id"`
	Nome      string  `json:"nome" example:"Agenda"`
	Codigo    string  `json:"codigo" example:"AGENDA"`
	Descricao string  `json:"descricao"`
	Preco     Decimal `json:"preco" swaggertype:"number" example:"49.90"`
	IsFree    bool    `json:"is_free"`
	TrialDays int     `json:"trial_days" example:"14"`
}

type PlanDetailResponse struct {
	PlanResponse
	Modules []PlanOfferResponse `json:"modules"`
}

func FromPlanDetail(p *domain.Plan, offers []service.PlanOffer) PlanDetailResponse {
	modules := make([]PlanOfferResponse, len(offers))
	for i, o := range offers {
		modules[i] = PlanOfferResponse{
			ModuleID:  o.Module.ID,
			Nome:      o.Module.Nome,
			Codigo:    o.Module.Codigo,
			Descricao: o.Module.Descricao,
			Preco:     NewDecimal(o.Terms.Preco),
			IsFree:    o.Terms.IsFree,
			TrialDays: o.Terms.TrialDays,
		}
	}
	return PlanDetailResponse{PlanResponse: FromPlan(p), Modules: modules}
}
