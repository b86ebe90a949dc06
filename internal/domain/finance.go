package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Payable is an amount the subscriber owes.
type Payable struct {
	TenantBase
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate     Date            `gorm:"type:date;not null;index" json:"due_date"`
	Paid        bool            `gorm:"not null" json:"paid"`
	PaymentDate *Date           `gorm:"type:date;index" json:"payment_date"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

func (Payable) TableName() string {
	return "payables"
}

func (b *Payable) validate() error {
	p := Problems{}
	b.Description = strings.TrimSpace(b.Description)
	checkLength(p, "description", b.Description, 3, 255)
	checkPositiveMoney(p, "amount", b.Amount)
	p.Check(!b.DueDate.IsZero(), "due_date", "is required")
	if b.Paid {
		p.Check(b.PaymentDate != nil && !b.PaymentDate.IsZero(), "payment_date", "is required when paid")
	} else {
		b.PaymentDate = nil
	}
	return p.Err()
}

func (b *Payable) MarkAsPaid(on Date) error {
	if b.Paid {
		return FieldError("paid", "payable is already paid")
	}
	if on.IsZero() {
		return FieldError("payment_date", "is required")
	}
	b.Paid = true
	b.PaymentDate = &on
	return b.validate()
}

type PayableDraft struct {
	Description string
	Amount      decimal.Decimal
	DueDate     Date
	Paid        bool
	PaymentDate *Date
	Notes       string
}

func (d PayableDraft) Build() (*Payable, error) {
	b := &Payable{
		Description: d.Description,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		Paid:        d.Paid,
		PaymentDate: d.PaymentDate,
		Notes:       d.Notes,
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

type PayablePatch struct {
	Description *string
	Amount      *decimal.Decimal
	DueDate     *Date
	Paid        *bool
	PaymentDate *Date
	Notes       *string
}

func (p PayablePatch) Apply(b *Payable) error {
	next := *b
	setIf(&next.Description, p.Description)
	setIf(&next.Amount, p.Amount)
	setIf(&next.DueDate, p.DueDate)
	setIf(&next.Paid, p.Paid)
	if p.PaymentDate != nil {
		next.PaymentDate = p.PaymentDate
	}
	setIf(&next.Notes, p.Notes)
	if err := next.validate(); err != nil {
		return err
	}
	*b = next
	return nil
}

// Receivable is an amount owed to the subscriber, optionally by a patient.
type Receivable struct {
	TenantBase
	Description string          `gorm:"type:varchar(255);not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	DueDate     Date            `gorm:"type:date;not null;index" json:"due_date"`
	PatientID   *string         `gorm:"type:uuid;index" json:"patient_id"`
	Received    bool            `gorm:"not null" json:"received"`
	ReceiveDate *Date           `gorm:"type:date;index" json:"receive_date"`
	Notes       string          `gorm:"type:text" json:"notes"`
}

func (Receivable) TableName() string {
	return "receivables"
}

func (r *Receivable) validate() error {
	p := Problems{}
	r.Description = strings.TrimSpace(r.Description)
	checkLength(p, "description", r.Description, 3, 255)
	checkPositiveMoney(p, "amount", r.Amount)
	p.Check(!r.DueDate.IsZero(), "due_date", "is required")
	if r.PatientID != nil && *r.PatientID == "" {
		r.PatientID = nil
	}
	if r.Received {
		p.Check(r.ReceiveDate != nil && !r.ReceiveDate.IsZero(), "receive_date", "is required when received")
	} else {
		r.ReceiveDate = nil
	}
	return p.Err()
}

func (r *Receivable) MarkAsReceived(on Date) error {
	if r.Received {
		return FieldError("received", "receivable is already received")
	}
	if on.IsZero() {
		return FieldError("receive_date", "is required")
	}
	r.Received = true
	r.ReceiveDate = &on
	return r.validate()
}

type ReceivableDraft struct {
	Description string
	Amount      decimal.Decimal
	DueDate     Date
	PatientID   *string
	Received    bool
	ReceiveDate *Date
	Notes       string
}

func (d ReceivableDraft) Build() (*Receivable, error) {
	r := &Receivable{
		Description: d.Description,
		Amount:      d.Amount,
		DueDate:     d.DueDate,
		PatientID:   d.PatientID,
		Received:    d.Received,
		ReceiveDate: d.ReceiveDate,
		Notes:       d.Notes,
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

type ReceivablePatch struct {
	Description *string
	Amount      *decimal.Decimal
	DueDate     *Date
	PatientID   *string
	Received    *bool
	ReceiveDate *Date
	Notes       *string
}

func (p ReceivablePatch) Apply(r *Receivable) error {
	next := *r
	setIf(&next.Description, p.Description)
	setIf(&next.Amount, p.Amount)
	setIf(&next.DueDate, p.DueDate)
	if p.PatientID != nil {
		id := *p.PatientID
		next.PatientID = &id
	}
	setIf(&next.Received, p.Received)
	if p.ReceiveDate != nil {
		next.ReceiveDate = p.ReceiveDate
	}
	setIf(&next.Notes, p.Notes)
	if err := next.validate(); err != nil {
		return err
	}
	*r = next
	return nil
}

// CashFlowSummary totals settled money for a period.
type CashFlowSummary struct {
	From          Date
	To            Date
	TotalInflows  decimal.Decimal
	TotalOutflows decimal.Decimal
	NetFlow       decimal.Decimal
}

func NewCashFlowSummary(from, to Date, inflows, outflows decimal.Decimal) CashFlowSummary {
	return CashFlowSummary{
		From:          from,
		To:            to,
		TotalInflows:  inflows,
		TotalOutflows: outflows,
		NetFlow:       inflows.Sub(outflows),
	}
}

// ProfitCalculation splits costs into direct (clinical) and overall.
type ProfitCalculation struct {
	From          Date
	To            Date
	TotalRevenue  decimal.Decimal
	ClinicalCosts decimal.Decimal
	FixedCosts    decimal.Decimal
	VariableCosts decimal.Decimal
	TotalCosts    decimal.Decimal
	GrossProfit   decimal.Decimal
	NetProfit     decimal.Decimal
}

func NewProfitCalculation(from, to Date, revenue, clinical, fixed, variable decimal.Decimal) ProfitCalculation {
	total := clinical.Add(fixed).Add(variable)
	return ProfitCalculation{
		From:          from,
		To:            to,
		TotalRevenue:  revenue,
		ClinicalCosts: clinical,
		FixedCosts:    fixed,
		VariableCosts: variable,
		TotalCosts:    total,
		GrossProfit:   revenue.Sub(clinical),
		NetProfit:     revenue.Sub(total),
	}
}

// CheckPeriod validates an inclusive reporting range.
func CheckPeriod(from, to Date) error {
	p := Problems{}
	p.Check(!from.IsZero(), "from", "is required")
	p.Check(!to.IsZero(), "to", "is required")
	if !from.IsZero() && !to.IsZero() {
		p.Check(!to.Before(from), "to", "must not be before from")
	}
	return p.Err()
}
