package dto

import "github.com/kingrain94/clinic-admin-api/internal/domain"

type PayableFields struct {
	Description string       `json:"description" binding:"required,max=255" example:"Fornecedor de materiais"`
	Amount      Decimal      `json:"amount" swaggertype:"number" example:"850.00"`
	DueDate     domain.Date  `json:"due_date" swaggertype:"string" example:"2025-06-10"`
	Paid        bool         `json:"paid" example:"false"`
	PaymentDate *domain.Date `json:"payment_date" swaggertype:"string"`
	Notes       string       `json:"notes"`
}

type CreatePayableRequest struct {
	PayableFields
}

func (r CreatePayableRequest) ToDraft() domain.PayableDraft {
	return domain.PayableDraft{
		Description: r.Description,
		Amount:      r.Amount.Decimal,
		DueDate:     r.DueDate,
		Paid:        r.Paid,
		PaymentDate: r.PaymentDate,
		Notes:       r.Notes,
	}
}

type UpdatePayableRequest struct {
	Description *string      `json:"description" binding:"omitempty,max=255"`
	Amount      *Decimal     `json:"amount" swaggertype:"number"`
	DueDate     *domain.Date `json:"due_date" swaggertype:"string"`
	Paid        *bool        `json:"paid"`
	PaymentDate *domain.Date `json:"payment_date" swaggertype:"string"`
	Notes       *string      `json:"notes"`
}

func (r UpdatePayableRequest) ToPatch() domain.PayablePatch {
	return domain.PayablePatch{
		Description: r.Description,
		Amount:      decimalPtr(r.Amount),
		DueDate:     r.DueDate,
		Paid:        r.Paid,
		PaymentDate: r.PaymentDate,
		Notes:       r.Notes,
	}
}

type PayableResponse struct {
	TenantMeta
	PayableFields
}

func FromPayable(p *domain.Payable) PayableResponse {
	return PayableResponse{
		TenantMeta: tenantMetaOf(p.TenantBase),
		PayableFields: PayableFields{
			Description: p.Description,
			Amount:      NewDecimal(p.Amount),
			DueDate:     p.DueDate,
			Paid:        p.Paid,
			PaymentDate: p.PaymentDate,
			Notes:       p.Notes,
		},
	}
}

type ReceivableFields struct {
	Description string       `json:"description" binding:"required,max=255" example:"Tratamento ortodôntico"`
	Amount      Decimal      `json:"amount" swaggertype:"number" example:"1200.00"`
	DueDate     domain.Date  `json:"due_date" swaggertype:"string" example:"2025-06-15"`
	PatientID   *string      `json:"patient_id" binding:"omitempty,uuid"`
	Received    bool         `json:"received" example:"false"`
	ReceiveDate *domain.Date `json:"receive_date" swaggertype:"string"`
	Notes       string       `json:"notes"`
}

type CreateReceivableRequest struct {
	ReceivableFields
}

func (r CreateReceivableRequest) ToDraft() domain.ReceivableDraft {
	return domain.ReceivableDraft{
		Description: r.Description,
		Amount:      r.Amount.Decimal,
		DueDate:     r.DueDate,
		PatientID:   r.PatientID,
		Received:    r.Received,
		ReceiveDate: r.ReceiveDate,
		Notes:       r.Notes,
	}
}

type UpdateReceivableRequest struct {
	Description *string      `json:"description" binding:"omitempty,max=255"`
	Amount      *Decimal     `json:"amount" swaggertype:"number"`
	DueDate     *domain.Date `json:"due_date" swaggertype:"string"`
	PatientID   *string      `json:"patient_id" binding:"omitempty,uuid"`
	Received    *bool        `json:"received"`
	ReceiveDate *domain.Date `json:"receive_date" swaggertype:"string"`
	Notes       *string      `json:"notes"`
}

func (r UpdateReceivableRequest) ToPatch() domain.ReceivablePatch {
	return domain.ReceivablePatch{
		Description: r.Description,
		Amount:      decimalPtr(r.Amount),
		DueDate:     r.DueDate,
		PatientID:   r.PatientID,
		Received:    r.Received,
		ReceiveDate: r.ReceiveDate,
		Notes:       r.Notes,
	}
}

type ReceivableResponse struct {
	TenantMeta
	ReceivableFields
}

func FromReceivable(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		TenantMeta: tenantMetaOf(r.TenantBase),
		ReceivableFields: ReceivableFields{
			Description: r.Description,
			Amount:      NewDecimal(r.Amount),
			DueDate:     r.DueDate,
			PatientID:   r.PatientID,
			Received:    r.Received,
			ReceiveDate: r.ReceiveDate,
			Notes:       r.Notes,
		},
	}
}

// SettleRequest marks a payable paid or a receivable received. The date
// defaults to today.
type SettleRequest struct {
	Date *domain.Date `json:"date" swaggertype:"string" example:"2025-06-10"`
}

type CashFlowResponse struct {
	PeriodFrom    domain.Date `json:"period_from" swaggertype:"string" example:"2025-05-01"`
	PeriodTo      domain.Date `json:"period_to" swaggertype:"string" example:"2025-05-31"`
	TotalInflows  Decimal     `json:"total_inflows" swaggertype:"number" example:"5400.00"`
	TotalOutflows Decimal     `json:"total_outflows" swaggertype:"number" example:"3100.00"`
	NetFlow       Decimal     `json:"net_flow" swaggertype:"number" example:"2300.00"`
}

func FromCashFlow(s domain.CashFlowSummary) CashFlowResponse {
	return CashFlowResponse{
		PeriodFrom:    s.From,
		PeriodTo:      s.To,
		TotalInflows:  NewDecimal(s.TotalInflows),
		TotalOutflows: NewDecimal(s.TotalOutflows),
		NetFlow:       NewDecimal(s.NetFlow),
	}
}

type ProfitResponse struct {
	PeriodFrom    domain.Date `json:"period_from" swaggertype:"string" example:"2025-05-01"`
	PeriodTo      domain.Date `json:"period_to" swaggertype:"string" example:"2025-05-31"`
	TotalRevenue  Decimal     `json:"total_revenue" swaggertype:"number" example:"5400.00"`
	ClinicalCosts Decimal     `json:"clinical_costs" swaggertype:"number" example:"900.00"`
	FixedCosts    Decimal     `json:"fixed_costs" swaggertype:"number" example:"3500.00"`
	VariableCosts Decimal     `json:"variable_costs" swaggertype:"number" example:"160.00"`
	TotalCosts    Decimal     `json:"total_costs" swaggertype:"number" example:"4560.00"`
	GrossProfit   Decimal     `json:"gross_profit" swaggertype:"number" example:"4500.00"`
	NetProfit     Decimal     `json:"net_profit" swaggertype:"number" example:"840.00"`
}

func FromProfit(p domain.ProfitCalculation) ProfitResponse {
	return ProfitResponse{
		PeriodFrom:    p.From,
		PeriodTo:      p.To,
		TotalRevenue:  NewDecimal(p.TotalRevenue),
		ClinicalCosts: NewDecimal(p.ClinicalCosts),
		FixedCosts:    NewDecimal(p.FixedCosts),
		VariableCosts: NewDecimal(p.VariableCosts),
		TotalCosts:    NewDecimal(p.TotalCosts),
		GrossProfit:   NewDecimal(p.GrossProfit),
		NetProfit:     NewDecimal(p.NetProfit),
	}
}
