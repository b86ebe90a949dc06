package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

var maxDurationHours = decimal.RequireFromString("999.99")

// ClinicalCost is the cost of one procedure: hours spent times the hourly rate.
type ClinicalCost struct {
	TenantBase
	ProcedureName string          `gorm:"type:varchar(255);not null" json:"procedure_name"`
	DurationHours decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"duration_hours"`
	HourlyRate    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"hourly_rate"`
	TotalCost     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_cost"`
	Date          Date            `gorm:"type:date;not null;index" json:"date"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`
}

func (ClinicalCost) TableName() string {
	return "costs_clinical"
}

func (c *ClinicalCost) validate() error {
	p := Problems{}
	c.ProcedureName = strings.TrimSpace(c.ProcedureName)
	checkLength(p, "procedure_name", c.ProcedureName, 1, 255)
	checkPositiveMoney(p, "duration_hours", c.DurationHours)
	p.Check(c.DurationHours.LessThanOrEqual(maxDurationHours), "duration_hours", "must not exceed 999.99")
	checkPositiveMoney(p, "hourly_rate", c.HourlyRate)
	p.Check(!c.Date.IsZero(), "date", "is required")
	return p.Err()
}

func (c *ClinicalCost) recomputeTotal() {
	c.TotalCost = c.DurationHours.Mul(c.HourlyRate).Round(2)
}

type ClinicalCostDraft struct {
	ProcedureName string
	DurationHours decimal.Decimal
	HourlyRate    decimal.Decimal
	Date          Date
	Observacoes   string
}

func (d ClinicalCostDraft) Build() (*ClinicalCost, error) {
	c := &ClinicalCost{
		ProcedureName: d.ProcedureName,
		DurationHours: d.DurationHours,
		HourlyRate:    d.HourlyRate,
		Date:          d.Date,
		Observacoes:   d.Observacoes,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.recomputeTotal()
	return c, nil
}

type ClinicalCostPatch struct {
	ProcedureName *string
	DurationHours *decimal.Decimal
	HourlyRate    *decimal.Decimal
	Date          *Date
	Observacoes   *string
}

// Apply changes only the provided fields. The total is recomputed when hours
// or rate change and kept as stored otherwise.
func (p ClinicalCostPatch) Apply(c *ClinicalCost) error {
	next := *c
	setIf(&next.ProcedureName, p.ProcedureName)
	setIf(&next.DurationHours, p.DurationHours)
	setIf(&next.HourlyRate, p.HourlyRate)
	setIf(&next.Date, p.Date)
	setIf(&next.Observacoes, p.Observacoes)
	if err := next.validate(); err != nil {
		return err
	}
	if p.DurationHours != nil || p.HourlyRate != nil {
		next.recomputeTotal()
	}
	*c = next
	return nil
}

// FixedCost is a recurring cost such as rent or salaries.
type FixedCost struct {
	TenantBase
	Nome        string          `gorm:"type:varchar(255);not null" json:"nome"`
	Valor       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Data        Date            `gorm:"type:date;not null;index" json:"data"`
	Observacoes string          `gorm:"type:text" json:"observacoes"`
}

func (FixedCost) TableName() string {
	return "costs_fixed"
}

func (c *FixedCost) validate() error {
	p := Problems{}
	c.Nome = strings.TrimSpace(c.Nome)
	checkLength(p, "nome", c.Nome, 1, 255)
	checkPositiveMoney(p, "valor", c.Valor)
	p.Check(!c.Data.IsZero(), "data", "is required")
	return p.Err()
}

type FixedCostDraft struct {
	Nome        string
	Valor       decimal.Decimal
	Data        Date
	Observacoes string
}

func (d FixedCostDraft) Build() (*FixedCost, error) {
	c := &FixedCost{Nome: d.Nome, Valor: d.Valor, Data: d.Data, Observacoes: d.Observacoes}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

type FixedCostPatch struct {
	Nome        *string
	Valor       *decimal.Decimal
	Data        *Date
	Observacoes *string
}

func (p FixedCostPatch) Apply(c *FixedCost) error {
	next := *c
	setIf(&next.Nome, p.Nome)
	setIf(&next.Valor, p.Valor)
	setIf(&next.Data, p.Data)
	setIf(&next.Observacoes, p.Observacoes)
	if err := next.validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// VariableCost scales with volume: unit value times quantity.
type VariableCost struct {
	TenantBase
	Nome          string          `gorm:"type:varchar(255);not null" json:"nome"`
	ValorUnitario decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor_unitario"`
	Quantidade    int             `gorm:"not null" json:"quantidade"`
	ValorTotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor_total"`
	Data          Date            `gorm:"type:date;not null;index" json:"data"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`
}

func (VariableCost) TableName() string {
	return "costs_variable"
}

func (c *VariableCost) validate() error {
	p := Problems{}
	c.Nome = strings.TrimSpace(c.Nome)
	checkLength(p, "nome", c.Nome, 1, 255)
	checkPositiveMoney(p, "valor_unitario", c.ValorUnitario)
	p.Check(c.Quantidade > 0, "quantidade", "must be greater than zero")
	p.Check(!c.Data.IsZero(), "data", "is required")
	return p.Err()
}

func (c *VariableCost) recomputeTotal() {
	c.ValorTotal = c.ValorUnitario.Mul(decimal.NewFromInt(int64(c.Quantidade))).Round(2)
}

type VariableCostDraft struct {
	Nome          string
	ValorUnitario decimal.Decimal
	Quantidade    int
	Data          Date
	Observacoes   string
}

func (d VariableCostDraft) Build() (*VariableCost, error) {
	c := &VariableCost{
		Nome:          d.Nome,
		ValorUnitario: d.ValorUnitario,
		Quantidade:    d.Quantidade,
		Data:          d.Data,
		Observacoes:   d.Observacoes,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.recomputeTotal()
	return c, nil
}

type VariableCostPatch struct {
	Nome          *string
	ValorUnitario *decimal.Decimal
	Quantidade    *int
	Data          *Date
	Observacoes   *string
}

func (p VariableCostPatch) Apply(c *VariableCost) error {
	next := *c
	setIf(&next.Nome, p.Nome)
	setIf(&next.ValorUnitario, p.ValorUnitario)
	setIf(&next.Quantidade, p.Quantidade)
	setIf(&next.Data, p.Data)
	setIf(&next.Observacoes, p.Observacoes)
	if err := next.validate(); err != nil {
		return err
	}
	if p.ValorUnitario != nil || p.Quantidade != nil {
		next.recomputeTotal()
	}
	*c = next
	return nil
}

// setIf copies *src into dst when src is provided.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
