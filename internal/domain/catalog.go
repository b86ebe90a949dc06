package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Segment is a market vertical (odontologia, veterinaria, ...) plans target.
type Segment struct {
	Base
	Nome      string `gorm:"type:varchar(100);not null;uniqueIndex" json:"nome"`
	Descricao string `gorm:"type:text" json:"descricao"`
}

func (Segment) TableName() string {
	return "segments"
}

func (s *Segment) validate() error {
	p := Problems{}
	s.Nome = strings.TrimSpace(s.Nome)
	checkLength(p, "nome", s.Nome, 2, 100)
	return p.Err()
}

type SegmentDraft struct {
	Nome      string
	Descricao string
}

func (d SegmentDraft) Build() (*Segment, error) {
	s := &Segment{Nome: d.Nome, Descricao: d.Descricao}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type SegmentPatch struct {
	Nome      *string
	Descricao *string
}

func (p SegmentPatch) Apply(s *Segment) error {
	next := *s
	setIf(&next.Nome, p.Nome)
	setIf(&next.Descricao, p.Descricao)
	if err := next.validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

var moduleCode = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,49}$`)

// Module is a sellable product feature.
type Module struct {
	Base
	Nome      string  `gorm:"type:varchar(100);not null" json:"nome"`
	Codigo    string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"codigo"`
	Descricao string  `gorm:"type:text" json:"descricao"`
	Config    JSONMap `json:"config"`
}

func (Module) TableName() string {
	return "modules"
}

func (m *Module) validate() error {
	p := Problems{}
	m.Nome = strings.TrimSpace(m.Nome)
	m.Codigo = strings.ToUpper(strings.TrimSpace(m.Codigo))
	checkLength(p, "nome", m.Nome, 2, 100)
	p.Check(moduleCode.MatchString(m.Codigo), "codigo", "must be upper case letters, digits and underscores")
	return p.Err()
}

type ModuleDraft struct {
	Nome      string
	Codigo    string
	Descricao string
	Config    map[string]any
}

func (d ModuleDraft) Build() (*Module, error) {
	m := &Module{Nome: d.Nome, Codigo: d.Codigo, Descricao: d.Descricao, Config: d.Config}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

type ModulePatch struct {
	Nome      *string
	Codigo    *string
	Descricao *string
	Config    map[string]any
}

func (p ModulePatch) Apply(m *Module) error {
	next := *m
	setIf(&next.Nome, p.Nome)
	setIf(&next.Codigo, p.Codigo)
	setIf(&next.Descricao, p.Descricao)
	if p.Config != nil {
		next.Config = p.Config
	}
	if err := next.validate(); err != nil {
		return err
	}
	*m = next
	return nil
}

type BillingCycle string

const (
	BillingMonthly   BillingCycle = "MENSAL"
	BillingQuarterly BillingCycle = "TRIMESTRAL"
	BillingYearly    BillingCycle = "ANUAL"
)

type Plan struct {
	Base
	Nome          string          `gorm:"type:varchar(100);not null" json:"nome"`
	Descricao     string          `gorm:"type:text" json:"descricao"`
	Preco         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"preco"`
	CicloCobranca BillingCycle    `gorm:"type:varchar(20);not null" json:"ciclo_cobranca"`
	SegmentID     *string         `gorm:"type:uuid;index" json:"segment_id"`
	Publico       bool            `gorm:"not null" json:"publico"`
}

func (Plan) TableName() string {
	return "plans"
}

func (pl *Plan) validate() error {
	p := Problems{}
	pl.Nome = strings.TrimSpace(pl.Nome)
	checkLength(p, "nome", pl.Nome, 2, 100)
	checkNonNegativeMoney(p, "preco", pl.Preco)
	if pl.CicloCobranca == "" {
		pl.CicloCobranca = BillingMonthly
	}
	switch pl.CicloCobranca {
	case BillingMonthly, BillingQuarterly, BillingYearly:
	default:
		p.Add("ciclo_cobranca", "must be MENSAL, TRIMESTRAL or ANUAL")
	}
	if pl.SegmentID != nil && *pl.SegmentID == "" {
		pl.SegmentID = nil
	}
	return p.Err()
}

type PlanDraft struct {
	Nome          string
	Descricao     string
	Preco         decimal.Decimal
	CicloCobranca BillingCycle
	SegmentID     *string
	Publico       bool
}

func (d PlanDraft) Build() (*Plan, error) {
	pl := &Plan{
		Nome:          d.Nome,
		Descricao:     d.Descricao,
		Preco:         d.Preco,
		CicloCobranca: d.CicloCobranca,
		SegmentID:     d.SegmentID,
		Publico:       d.Publico,
	}
	if err := pl.validate(); err != nil {
		return nil, err
	}
	return pl, nil
}

type PlanPatch struct {
	Nome          *string
	Descricao     *string
	Preco         *decimal.Decimal
	CicloCobranca *BillingCycle
	SegmentID     *string
	Publico       *bool
}

func (p PlanPatch) Apply(pl *Plan) error {
	next := *pl
	setIf(&next.Nome, p.Nome)
	setIf(&next.Descricao, p.Descricao)
	setIf(&next.Preco, p.Preco)
	setIf(&next.CicloCobranca, p.CicloCobranca)
	if p.SegmentID != nil {
		id := *p.SegmentID
		next.SegmentID = &id
	}
	setIf(&next.Publico, p.Publico)
	if err := next.validate(); err != nil {
		return err
	}
	*pl = next
	return nil
}

// PlanModule attaches a module to a plan with its own price and trial.
type PlanModule struct {
	Base
	PlanID    string          `gorm:"type:uuid;not null;uniqueIndex:idx_plan_modules_plan_module" json:"plan_id"`
	ModuleID  string          `gorm:"type:uuid;not null;uniqueIndex:idx_plan_modules_plan_module" json:"module_id"`
	Preco     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"preco"`
	IsFree    bool            `gorm:"not null" json:"is_free"`
	TrialDays int             `gorm:"not null" json:"trial_days"`
}

func (PlanModule) TableName() string {
	return "plan_modules"
}

// validate forces a zero price on free modules. hasPrice tells whether a price
// was supplied at all.
func (pm *PlanModule) validate(hasPrice bool) error {
	p := Problems{}
	p.Check(pm.PlanID != "", "plan_id", "is required")
	p.Check(pm.ModuleID != "", "module_id", "is required")
	if pm.IsFree {
		pm.Preco = decimal.Zero
	} else {
		p.Check(hasPrice, "preco", "is required unless is_free")
		checkNonNegativeMoney(p, "preco", pm.Preco)
	}
	p.Check(pm.TrialDays >= 0, "trial_days", "must not be negative")
	return p.Err()
}

type PlanModuleDraft struct {
	PlanID    string
	ModuleID  string
	Preco     *decimal.Decimal
	IsFree    bool
	TrialDays int
}

func (d PlanModuleDraft) Build() (*PlanModule, error) {
	pm := &PlanModule{PlanID: d.PlanID, ModuleID: d.ModuleID, IsFree: d.IsFree, TrialDays: d.TrialDays}
	if d.Preco != nil {
		pm.Preco = *d.Preco
	}
	if err := pm.validate(d.Preco != nil); err != nil {
		return nil, err
	}
	return pm, nil
}

type PlanModulePatch struct {
	Preco     *decimal.Decimal
	IsFree    *bool
	TrialDays *int
}

func (p PlanModulePatch) Apply(pm *PlanModule) error {
	next := *pm
	setIf(&next.Preco, p.Preco)
	setIf(&next.IsFree, p.IsFree)
	setIf(&next.TrialDays, p.TrialDays)
	// A module that stops being free needs a price in the same request.
	hasPrice := p.Preco != nil || !pm.IsFree
	if err := next.validate(hasPrice); err != nil {
		return err
	}
	*pm = next
	return nil
}

type SubscriberStatus string

const (
	SubscriberPending   SubscriberStatus = "pending"
	SubscriberActive    SubscriberStatus = "active"
	SubscriberSuspended SubscriberStatus = "suspended"
	SubscriberCancelled SubscriberStatus = "cancelled"
)

// Subscriber is the tenant: the customer account every tenant row belongs to.
type Subscriber struct {
	Base
	Nome        string           `gorm:"type:varchar(255);not null" json:"nome"`
	RazaoSocial string           `gorm:"type:varchar(255)" json:"razao_social"`
	Documento   string           `gorm:"type:varchar(14);not null;uniqueIndex" json:"documento"`
	Email       string           `gorm:"type:varchar(255)" json:"email"`
	Telefone    string           `gorm:"type:varchar(11)" json:"telefone"`
	SegmentID   *string          `gorm:"type:uuid;index" json:"segment_id"`
	PlanID      *string          `gorm:"type:uuid;index" json:"plan_id"`
	Status      SubscriberStatus `gorm:"type:varchar(20);not null" json:"status"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

func (s *Subscriber) validate() error {
	p := Problems{}
	s.Nome = strings.TrimSpace(s.Nome)
	checkLength(p, "nome", s.Nome, 2, 255)
	if doc, err := NormalizeDocument(s.Documento); err != nil {
		p.Add("documento", err.Error())
	} else {
		s.Documento = doc
	}
	s.Email = strings.TrimSpace(strings.ToLower(s.Email))
	checkEmail(p, "email", s.Email)
	if s.Telefone != "" {
		if phone, err := NormalizePhone(s.Telefone); err != nil {
			p.Add("telefone", err.Error())
		} else {
			s.Telefone = phone
		}
	}
	if s.Status == "" {
		s.Status = SubscriberPending
	}
	switch s.Status {
	case SubscriberPending, SubscriberActive, SubscriberSuspended, SubscriberCancelled:
	default:
		p.Add("status", "must be pending, active, suspended or cancelled")
	}
	for _, ref := range []**string{&s.SegmentID, &s.PlanID} {
		if *ref != nil && **ref == "" {
			*ref = nil
		}
	}
	return p.Err()
}

type SubscriberDraft struct {
	Nome        string
	RazaoSocial string
	Documento   string
	Email       string
	Telefone    string
	SegmentID   *string
	PlanID      *string
	Status      SubscriberStatus
}

func (d SubscriberDraft) Build() (*Subscriber, error) {
	s := &Subscriber{
		Nome:        d.Nome,
		RazaoSocial: d.RazaoSocial,
		Documento:   d.Documento,
		Email:       d.Email,
		Telefone:    d.Telefone,
		SegmentID:   d.SegmentID,
		PlanID:      d.PlanID,
		Status:      d.Status,
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

type SubscriberPatch struct {
	Nome        *string
	RazaoSocial *string
	Documento   *string
	Email       *string
	Telefone    *string
	SegmentID   *string
	PlanID      *string
	Status      *SubscriberStatus
}

func (p SubscriberPatch) Apply(s *Subscriber) error {
	next := *s
	setIf(&next.Nome, p.Nome)
	setIf(&next.RazaoSocial, p.RazaoSocial)
	setIf(&next.Documento, p.Documento)
	setIf(&next.Email, p.Email)
	setIf(&next.Telefone, p.Telefone)
	if p.SegmentID != nil {
		id := *p.SegmentID
		next.SegmentID = &id
	}
	if p.PlanID != nil {
		id := *p.PlanID
		next.PlanID = &id
	}
	setIf(&next.Status, p.Status)
	if err := next.validate(); err != nil {
		return err
	}
	*s = next
	return nil
}
