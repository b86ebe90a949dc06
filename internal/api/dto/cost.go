package dto

import "github.com/kingrain94/clinic-admin-api/internal/domain"

type ClinicalCostFields struct {
	ProcedureName string      `json:"procedure_name" binding:"required,max=255" example:"Consulta"`
	DurationHours Decimal     `json:"duration_hours" swaggertype:"number" example:"1.5"`
	HourlyRate    Decimal     `json:"hourly_rate" swaggertype:"number" example:"120.00"`
	Date          domain.Date `json:"date" swaggertype:"string" example:"2025-05-20"`
	Observacoes   string      `json:"observacoes"`
}

type CreateClinicalCostRequest struct {
	ClinicalCostFields
}

func (r CreateClinicalCostRequest) ToDraft() domain.ClinicalCostDraft {
	return domain.ClinicalCostDraft{
		ProcedureName: r.ProcedureName,
		DurationHours: r.DurationHours.Decimal,
		HourlyRate:    r.HourlyRate.Decimal,
		Date:          r.Date,
		Observacoes:   r.Observacoes,
	}
}

type UpdateClinicalCostRequest struct {
	ProcedureName *string      `json:"procedure_name" binding:"omitempty,max=255"`
	DurationHours *Decimal     `json:"duration_hours" swaggertype:"number"`
	HourlyRate    *Decimal     `json:"hourly_rate" swaggertype:"number"`
	Date          *domain.Date `json:"date" swaggertype:"string"`
	Observacoes   *string      `json:"observacoes"`
}

func (r UpdateClinicalCostRequest) ToPatch() domain.ClinicalCostPatch {
	return domain.ClinicalCostPatch{
		ProcedureName: r.ProcedureName,
		DurationHours: decimalPtr(r.DurationHours),
		HourlyRate:    decimalPtr(r.HourlyRate),
		Date:          r.Date,
		Observacoes:   r.Observacoes,
	}
}

type ClinicalCostResponse struct {
	TenantMeta
	ClinicalCostFields
	TotalCost Decimal `json:"total_cost" swaggertype:"number" example:"180.00"`
}

func FromClinicalCost(c *domain.ClinicalCost) ClinicalCostResponse {
	return ClinicalCostResponse{
		TenantMeta: tenantMetaOf(c.TenantBase),
		ClinicalCostFields: ClinicalCostFields{
			ProcedureName: c.ProcedureName,
			DurationHours: NewDecimal(c.DurationHours),
			HourlyRate:    NewDecimal(c.HourlyRate),
			Date:          c.Date,
			Observacoes:   c.Observacoes,
		},
		TotalCost: NewDecimal(c.TotalCost),
	}
}

type FixedCostFields struct {
	Nome        string      `json:"nome" binding:"required,max=255" example:"Aluguel"`
	Valor       Decimal     `json:"valor" swaggertype:"number" example:"3500.00"`
	Data        domain.Date `json:"data" swaggertype:"string" example:"2025-05-05"`
	Observacoes string      `json:"observacoes"`
}

type CreateFixedCostRequest struct {
	FixedCostFields
}

func (r CreateFixedCostRequest) ToDraft() domain.FixedCostDraft {
	return domain.FixedCostDraft{Nome: r.Nome, Valor: r.Valor.Decimal, Data: r.Data, Observacoes: r.Observacoes}
}

type UpdateFixedCostRequest struct {
	Nome        *string      `json:"nome" binding:"omitempty,max=255"`
	Valor       *Decimal     `json:"valor" swaggertype:"number"`
	Data        *domain.Date `json:"data" swaggertype:"string"`
	Observacoes *string      `json:"observacoes"`
}

func (r UpdateFixedCostRequest) ToPatch() domain.FixedCostPatch {
	return domain.FixedCostPatch{Nome: r.Nome, Valor: decimalPtr(r.Valor), Data: r.Data, Observacoes: r.Observacoes}
}

type FixedCostResponse struct {
	TenantMeta
	FixedCostFields
}

func FromFixedCost(c *domain.FixedCost) FixedCostResponse {
	return FixedCostResponse{
		TenantMeta: tenantMetaOf(c.TenantBase),
		FixedCostFields: FixedCostFields{
			Nome:        c.Nome,
			Valor:       NewDecimal(c.Valor),
			Data:        c.Data,
			Observacoes: c.Observacoes,
		},
	}
}

type VariableCostFields struct {
	Nome          string      `json:"nome" binding:"required,max=255" example:"Luvas"`
	ValorUnitario Decimal     `json:"valor_unitario" swaggertype:"number" example:"0.80"`
	Quantidade    int         `json:"quantidade" binding:"gte=0" example:"200"`
	Data          domain.Date `json:"data" swaggertype:"string" example:"2025-05-10"`
	Observacoes   string      `json:"observacoes"`
}

type CreateVariableCostRequest struct {
	VariableCostFields
}

func (r CreateVariableCostRequest) ToDraft() domain.VariableCostDraft {
	return domain.VariableCostDraft{
		Nome:          r.Nome,
		ValorUnitario: r.ValorUnitario.Decimal,
		Quantidade:    r.Quantidade,
		Data:          r.Data,
		Observacoes:   r.Observacoes,
	}
}

type UpdateVariableCostRequest struct {
	Nome          *string      `json:"nome" binding:"omitempty,max=255"`
	ValorUnitario *Decimal     `json:"valor_unitario" swaggertype:"number"`
	Quantidade    *int         `json:"quantidade" binding:"omitempty,gte=0"`
	Data          *domain.Date `json:"data" swaggertype:"string"`
	Observacoes   *string      `json:"observacoes"`
}

func (r UpdateVariableCostRequest) ToPatch() domain.VariableCostPatch {
	return domain.VariableCostPatch{
		Nome:          r.Nome,
		ValorUnitario: decimalPtr(r.ValorUnitario),
		Quantidade:    r.Quantidade,
		Data:          r.Data,
		Observacoes:   r.Observacoes,
	}
}

type VariableCostResponse struct {
	TenantMeta
	VariableCostFields
	ValorTotal Decimal `json:"valor_total" swaggertype:"number" example:"160.00"`
}

func FromVariableCost(c *domain.VariableCost) VariableCostResponse {
	return VariableCostResponse{
		TenantMeta: tenantMetaOf(c.TenantBase),
		VariableCostFields: VariableCostFields{
			Nome:          c.Nome,
			ValorUnitario: NewDecimal(c.ValorUnitario),
			Quantidade:    c.Quantidade,
			Data:          c.Data,
			Observacoes:   c.Observacoes,
		},
		ValorTotal: NewDecimal(c.ValorTotal),
	}
}
