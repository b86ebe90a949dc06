package dto

import (
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

type SegmentFields struct {
	Nome      string `json:"nome" binding:"required,max=100" example:"Odontologia"`
	Descricao string `json:"descricao"`
}

type CreateSegmentRequest struct {
	SegmentFields
}

func (r CreateSegmentRequest) ToDraft() domain.SegmentDraft {
	return domain.SegmentDraft(r.SegmentFields)
}

type UpdateSegmentRequest struct {
	Nome      *string `json:"nome" binding:"omitempty,max=100"`
	Descricao *string `json:"descricao"`
}

func (r UpdateSegmentRequest) ToPatch() domain.SegmentPatch {
	return domain.SegmentPatch(r)
}

type SegmentResponse struct {
	Meta
	SegmentFields
}

func FromSegment(s *domain.Segment) SegmentResponse {
	return SegmentResponse{Meta: metaOf(s.Base), SegmentFields: SegmentFields{Nome: s.Nome, Descricao: s.Descricao}}
}

type ModuleFields struct {
	Nome      string         `json:"nome" binding:"required,max=100" example:"Agenda"`
	Codigo    string         `json:"codigo" binding:"required,max=50" example:"AGENDA"`
	Descricao string         `json:"descricao"`
	Config    map[string]any `json:"config"`
}

type CreateModuleRequest struct {
	ModuleFields
}

func (r CreateModuleRequest) ToDraft() domain.ModuleDraft {
	return domain.ModuleDraft(r.ModuleFields)
}

type UpdateModuleRequest struct {
	Nome      *string        `json:"nome" binding:"omitempty,max=100"`
	Codigo    *string        `json:"codigo" binding:"omitempty,max=50"`
	Descricao *string        `json:"descricao"`
	Config    map[string]any `json:"config"`
}

func (r UpdateModuleRequest) ToPatch() domain.ModulePatch {
	return domain.ModulePatch(r)
}

type ModuleResponse struct {
	Meta
	ModuleFields
}

func FromModule(m *domain.Module) ModuleResponse {
	return ModuleResponse{
		Meta:         metaOf(m.Base),
		ModuleFields: ModuleFields{Nome: m.Nome, Codigo: m.Codigo, Descricao: m.Descricao, Config: m.Config},
	}
}

type PlanFields struct {
	Nome          string  `json:"nome" binding:"required,max=100" example:"Clínica Pro"`
	Descricao     string  `json:"descricao"`
	Preco         Decimal `json:"preco" swaggertype:"number" example:"299.90"`
	CicloCobranca string  `json:"ciclo_cobranca" binding:"omitempty,oneof=MENSAL TRIMESTRAL ANUAL" example:"MENSAL"`
	SegmentID     *string `json:"segment_id" binding:"omitempty,uuid"`
	Publico       bool    `json:"publico" example:"true"`
}

type CreatePlanRequest struct {
	PlanFields
}

func (r CreatePlanRequest) ToDraft() domain.PlanDraft {
	return domain.PlanDraft{
		Nome:          r.Nome,
		Descricao:     r.Descricao,
		Preco:         r.Preco.Decimal,
		CicloCobranca: domain.BillingCycle(r.CicloCobranca),
		SegmentID:     r.SegmentID,
		Publico:       r.Publico,
	}
}

type UpdatePlanRequest struct {
	Nome          *string  `json:"nome" binding:"omitempty,max=100"`
	Descricao     *string  `json:"descricao"`
	Preco         *Decimal `json:"preco" swaggertype:"number"`
	CicloCobranca *string  `json:"ciclo_cobranca" binding:"omitempty,oneof=MENSAL TRIMESTRAL ANUAL"`
	SegmentID     *string  `json:"segment_id" binding:"omitempty,uuid"`
	Publico       *bool    `json:"publico"`
}

func (r UpdatePlanRequest) ToPatch() domain.PlanPatch {
	p := domain.PlanPatch{
		Nome:      r.Nome,
		Descricao: r.Descricao,
		Preco:     decimalPtr(r.Preco),
		SegmentID: r.SegmentID,
		Publico:   r.Publico,
	}
	if r.CicloCobranca != nil {
		cycle := domain.BillingCycle(*r.CicloCobranca)
		p.CicloCobranca = &cycle
	}
	return p
}

type PlanResponse struct {
	Meta
	PlanFields
}

func FromPlan(p *domain.Plan) PlanResponse {
	return PlanResponse{
		Meta: metaOf(p.Base),
		PlanFields: PlanFields{
			Nome:          p.Nome,
			Descricao:     p.Descricao,
			Preco:         NewDecimal(p.Preco),
			CicloCobranca: string(p.CicloCobranca),
			SegmentID:     p.SegmentID,
			Publico:       p.Publico,
		},
	}
}

type CreatePlanModuleRequest struct {
	PlanID    string   `json:"plan_id" binding:"required,uuid"`
	ModuleID  string   `json:"module_id" binding:"required,uuid"`
	Preco     *Decimal `json:"preco" swaggertype:"number" example:"49.90"`
	IsFree    bool     `json:"is_free" example:"false"`
	TrialDays int      `json:"trial_days" binding:"gte=0" example:"14"`
}

func (r CreatePlanModuleRequest) ToDraft() domain.PlanModuleDraft {
	return domain.PlanModuleDraft{
		PlanID:    r.PlanID,
		ModuleID:  r.ModuleID,
		Preco:     decimalPtr(r.Preco),
		IsFree:    r.IsFree,
		TrialDays: r.TrialDays,
	}
}

type UpdatePlanModuleRequest struct {
	Preco     *Decimal `json:"preco" swaggertype:"number"`
	IsFree    *bool    `json:"is_free"`
	TrialDays *int     `json:"trial_days" binding:"omitempty,gte=0"`
}

func (r UpdatePlanModuleRequest) ToPatch() domain.PlanModulePatch {
	return domain.PlanModulePatch{Preco: decimalPtr(r.Preco), IsFree: r.IsFree, TrialDays: r.TrialDays}
}

type PlanModuleResponse struct {
	Meta
	PlanID    string  `json:"plan_id"`
	ModuleID  string  `json:"module_id"`
	Preco     Decimal `json:"preco" swaggertype:"number" example:"49.90"`
	IsFree    bool    `json:"is_free"`
	TrialDays int     `json:"trial_days"`
}

func FromPlanModule(pm *domain.PlanModule) PlanModuleResponse {
	return PlanModuleResponse{
		Meta:      metaOf(pm.Base),
		PlanID:    pm.PlanID,
		ModuleID:  pm.ModuleID,
		Preco:     NewDecimal(pm.Preco),
		IsFree:    pm.IsFree,
		TrialDays: pm.TrialDays,
	}
}

type SubscriberFields struct {
	Nome        string  `json:"nome" binding:"required,max=255" example:"Clínica Sorriso"`
	RazaoSocial string  `json:"razao_social" binding:"max=255"`
	Documento   string  `json:"documento" binding:"required" example:"11222333000181"`
	Email       string  `json:"email" binding:"omitempty,email"`
	Telefone    string  `json:"telefone"`
	SegmentID   *string `json:"segment_id" binding:"omitempty,uuid"`
	PlanID      *string `json:"plan_id" binding:"omitempty,uuid"`
	Status      string  `json:"status" binding:"omitempty,oneof=pending active suspended cancelled" example:"active"`
}

// OwnerFields is the first user of a subscriber.
type OwnerFields struct {
	Name     string `json:"name" binding:"required,max=100" example:"Joana Prado"`
	Email    string `json:"email" binding:"required,email" example:"joana@sorriso.com.br"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"s3nh4-f0rte"`
}

func (o *OwnerFields) toOwner() *service.NewOwner {
	if o == nil {
		return nil
	}
	return &service.NewOwner{Name: o.Name, Email: o.Email, Password: o.Password}
}

type CreateSubscriberRequest struct {
	SubscriberFields
	// Owner, when present, is created as the subscriber's DONO_ASSINANTE.
	Owner *OwnerFields `json:"owner"`
}

func (r CreateSubscriberRequest) ToDraft() service.NewSubscriber {
	return service.NewSubscriber{
		Subscriber: domain.SubscriberDraft{
			Nome:        r.Nome,
			RazaoSocial: r.RazaoSocial,
			Documento:   r.Documento,
			Email:       r.Email,
			Telefone:    r.Telefone,
			SegmentID:   r.SegmentID,
			PlanID:      r.PlanID,
			Status:      domain.SubscriberStatus(r.Status),
		},
		Owner: r.Owner.toOwner(),
	}
}

type UpdateSubscriberRequest struct {
	Nome        *string `json:"nome" binding:"omitempty,max=255"`
	RazaoSocial *string `json:"razao_social" binding:"omitempty,max=255"`
	Documento   *string `json:"documento"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Telefone    *string `json:"telefone"`
	SegmentID   *string `json:"segment_id" binding:"omitempty,uuid"`
	PlanID      *string `json:"plan_id" binding:"omitempty,uuid"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending active suspended cancelled"`
}

func (r UpdateSubscriberRequest) ToPatch() domain.SubscriberPatch {
	p := domain.SubscriberPatch{
		Nome:        r.Nome,
		RazaoSocial: r.RazaoSocial,
		Documento:   r.Documento,
		Email:       r.Email,
		Telefone:    r.Telefone,
		SegmentID:   r.SegmentID,
		PlanID:      r.PlanID,
	}
	if r.Status != nil {
		status := domain.SubscriberStatus(*r.Status)
		p.Status = &status
	}
	return p
}

type SubscriberResponse struct {
	Meta
	SubscriberFields
}

func FromSubscriber(s *domain.Subscriber) SubscriberResponse {
	return SubscriberResponse{
		Meta: metaOf(s.Base),
		SubscriberFields: SubscriberFields{
			Nome:        s.Nome,
			RazaoSocial: s.RazaoSocial,
			Documento:   s.Documento,
			Email:       s.Email,
			Telefone:    s.Telefone,
			SegmentID:   s.SegmentID,
			PlanID:      s.PlanID,
			Status:      string(s.Status),
		},
	}
}
