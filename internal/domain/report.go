package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReportType string

const (
	ReportMonthly   ReportType = "MENSAL"
	ReportQuarterly ReportType = "TRIMESTRAL"
	ReportYearly    ReportType = "ANUAL"
	ReportCustom    ReportType = "CUSTOMIZADO"
)

// ReportPeriod resolves the inclusive date range a report covers. Calendar
// types use the period containing reference; CUSTOMIZADO uses from and to.
func ReportPeriod(kind ReportType, reference, from, to Date) (Date, Date, error) {
	if kind != ReportCustom && reference.IsZero() {
		reference = Today()
	}
	y, m := reference.Year(), reference.Month()
	switch kind {
	case ReportMonthly:
		start := NewDate(y, m, 1)
		return start, Date{start.AddDate(0, 1, -1)}, nil
	case ReportQuarterly:
		first := time.Month((int(m)-1)/3*3 + 1)
		start := NewDate(y, first, 1)
		return start, Date{start.AddDate(0, 3, -1)}, nil
	case ReportYearly:
		return NewDate(y, time.January, 1), NewDate(y, time.December, 31), nil
	case ReportCustom:
		if err := CheckPeriod(from, to); err != nil {
			return Date{}, Date{}, err
		}
		return from, to, nil
	default:
		return Date{}, Date{}, FieldError("tipo", "must be MENSAL, TRIMESTRAL, ANUAL or CUSTOMIZADO")
	}
}

// CostReport totals every cost family for one period.
type CostReport struct {
	SubscriberID  string          `json:"subscriber_id"`
	Tipo          ReportType      `json:"tipo"`
	DataInicio    Date            `json:"data_inicio"`
	DataFim       Date            `json:"data_fim"`
	TotalFixed    decimal.Decimal `json:"total_custos_fixos"`
	TotalVariable decimal.Decimal `json:"total_custos_variaveis"`
	TotalClinical decimal.Decimal `json:"total_custos_clinicos"`
	TotalSupplies decimal.Decimal `json:"total_insumos"`
	Total         decimal.Decimal `json:"total_geral"`
	GeneratedAt   time.Time       `json:"gerado_em"`
}

func NewCostReport(tenantID string, kind ReportType, from, to Date, fixed, variable, clinical, supplies decimal.Decimal, now time.Time) CostReport {
	return CostReport{
		SubscriberID:  tenantID,
		Tipo:          kind,
		DataInicio:    from,
		DataFim:       to,
		TotalFixed:    fixed,
		TotalVariable: variable,
		TotalClinical: clinical,
		TotalSupplies: supplies,
		Total:         fixed.Add(variable).Add(clinical).Add(supplies),
		GeneratedAt:   now,
	}
}
