package dto

import (
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

// CostReportRequest is the body of the export endpoint; the GET endpoint takes
// the same fields from the query string.
type CostReportRequest struct {
	Tipo       string       `json:"tipo" binding:"required,oneof=MENSAL TRIMESTRAL ANUAL CUSTOMIZADO" example:"MENSAL"`
	Referencia *domain.Date `json:"referencia" swaggertype:"string" example:"2025-05-01"`
	DataInicio *domain.Date `json:"data_inicio" swaggertype:"string"`
	DataFim    *domain.Date `json:"data_fim" swaggertype:"string"`
}

func dateOrZero(d *domain.Date) domain.Date {
	if d == nil {
		return domain.Date{}
	}
	return *d
}

func (r CostReportRequest) Period() (domain.ReportType, domain.Date, domain.Date, domain.Date) {
	return domain.ReportType(r.Tipo), dateOrZero(r.Referencia), dateOrZero(r.DataInicio), dateOrZero(r.DataFim)
}

type CostReportResponse struct {
	SubscriberID  string      `json:"subscriber_id"`
	Tipo          string      `json:"tipo" example:"MENSAL"`
	DataInicio    domain.Date `json:"data_inicio" swaggertype:"string" example:"2025-05-01"`
	DataFim       domain.Date `json:"data_fim" swaggertype:"string" example:"2025-05-31"`
	TotalFixed    Decimal     `json:"total_custos_fixos" swaggertype:"number" example:"3500.00"`
	TotalVariable Decimal     `json:"total_custos_variaveis" swaggertype:"number" example:"160.00"`
	TotalClinical Decimal     `json:"total_custos_clinicos" swaggertype:"number" example:"900.00"`
	TotalSupplies Decimal     `json:"total_insumos" swaggertype:"number" example:"97.50"`
	Total         Decimal     `json:"total_geral" swaggertype:"number" example:"4657.50"`
	GeneratedAt   time.Time   `json:"gerado_em"`
}

func FromCostReport(r domain.CostReport) CostReportResponse {
	return CostReportResponse{
		SubscriberID:  r.SubscriberID,
		Tipo:          string(r.Tipo),
		DataInicio:    r.DataInicio,
		DataFim:       r.DataFim,
		TotalFixed:    NewDecimal(r.TotalFixed),
		TotalVariable: NewDecimal(r.TotalVariable),
		TotalClinical: NewDecimal(r.TotalClinical),
		TotalSupplies: NewDecimal(r.TotalSupplies),
		Total:         NewDecimal(r.Total),
		GeneratedAt:   r.GeneratedAt,
	}
}

type CostReportExportResponse struct {
	Key    string             `json:"key" example:"cost-reports/7c9e6679-7425-40de-944b-e07fc1f90ae7/2025-05-01_2025-05-31.json"`
	Report CostReportResponse `json:"report"`
}
