package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Insumo is a supply item whose stock is tracked through movements.
type Insumo struct {
	TenantBase
	Nome             string          `gorm:"type:varchar(255);not null" json:"nome"`
	Tipo             string          `gorm:"type:varchar(100);not null" json:"tipo"`
	Unidade          string          `gorm:"type:varchar(50);not null" json:"unidade"`
	Categoria        string          `gorm:"type:varchar(100);not null;index" json:"categoria"`
	Descricao        string          `gorm:"type:text" json:"descricao"`
	ValorUnitario    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor_unitario"`
	EstoqueMinimo    int             `gorm:"not null" json:"estoque_minimo"`
	EstoqueAtual     int             `gorm:"not null" json:"estoque_atual"`
	Fornecedor       string          `gorm:"type:varchar(255)" json:"fornecedor"`
	CodigoReferencia string          `gorm:"type:varchar(100)" json:"codigo_referencia"`
	DataValidade     *Date           `gorm:"type:date" json:"data_validade"`
	DataCompra       *Date           `gorm:"type:date" json:"data_compra"`
	Observacoes      string          `gorm:"type:text" json:"observacoes"`
}

func (Insumo) TableName() string {
	return "insumos"
}

func (i *Insumo) validate() error {
	p := Problems{}
	i.Nome = strings.TrimSpace(i.Nome)
	i.Tipo = strings.TrimSpace(i.Tipo)
	i.Unidade = strings.TrimSpace(i.Unidade)
	i.Categoria = strings.TrimSpace(i.Categoria)
	checkLength(p, "nome", i.Nome, 1, 255)
	checkLength(p, "tipo", i.Tipo, 1, 100)
	checkLength(p, "unidade", i.Unidade, 1, 50)
	checkLength(p, "categoria", i.Categoria, 1, 100)
	checkNonNegativeMoney(p, "valor_unitario", i.ValorUnitario)
	p.Check(i.EstoqueMinimo >= 0, "estoque_minimo", "must not be negative")
	p.Check(i.EstoqueAtual >= 0, "estoque_atual", "must not be negative")
	if i.DataCompra != nil && i.DataValidade != nil {
		p.Check(!i.DataValidade.Before(*i.DataCompra), "data_validade", "must not be before data_compra")
	}
	return p.Err()
}

// IsLowStock reports whether the current stock reached the minimum.
func (i *Insumo) IsLowStock() bool {
	return i.EstoqueAtual <= i.EstoqueMinimo
}

// ApplyMovement records m against the current stock, filling in the before and
// after quantities. A withdrawal that would leave negative stock is rejected
// and the insumo is left untouched.
func (i *Insumo) ApplyMovement(m *StockMovement) error {
	if err := m.validate(); err != nil {
		return err
	}
	if !i.IsActive {
		return FieldError("insumo_id", "insumo is inactive")
	}
	next := i.EstoqueAtual + m.Quantidade
	if m.Tipo == MovementOut {
		next = i.EstoqueAtual - m.Quantidade
	}
	if next < 0 {
		return FieldError("quantidade", "insufficient stock")
	}
	m.InsumoID = i.ID
	m.EstoqueAnterior = i.EstoqueAtual
	m.EstoqueResultante = next
	m.ValorTotal = i.ValorUnitario.Mul(decimal.NewFromInt(int64(m.Quantidade))).Round(2)
	i.EstoqueAtual = next
	return nil
}

type InsumoDraft struct {
	Nome             string
	Tipo             string
	Unidade          string
	Categoria        string
	Descricao        string
	ValorUnitario    decimal.Decimal
	EstoqueMinimo    int
	EstoqueAtual     int
	Fornecedor       string
	CodigoReferencia string
	DataValidade     *Date
	DataCompra       *Date
	Observacoes      string
}

func (d InsumoDraft) Build() (*Insumo, error) {
	i := &Insumo{
		Nome:             d.Nome,
		Tipo:             d.Tipo,
		Unidade:          d.Unidade,
		Categoria:        d.Categoria,
		Descricao:        d.Descricao,
		ValorUnitario:    d.ValorUnitario,
		EstoqueMinimo:    d.EstoqueMinimo,
		EstoqueAtual:     d.EstoqueAtual,
		Fornecedor:       d.Fornecedor,
		CodigoReferencia: d.CodigoReferencia,
		DataValidade:     d.DataValidade,
		DataCompra:       d.DataCompra,
		Observacoes:      d.Observacoes,
	}
	if err := i.validate(); err != nil {
		return nil, err
	}
	return i, nil
}

// InsumoPatch leaves stock alone; stock only changes through movements.
type InsumoPatch struct {
	Nome             *string
	Tipo             *string
	Unidade          *string
	Categoria        *string
	Descricao        *string
	ValorUnitario    *decimal.Decimal
	EstoqueMinimo    *int
	Fornecedor       *string
	CodigoReferencia *string
	DataValidade     *Date
	DataCompra       *Date
	Observacoes      *string
}

func (p InsumoPatch) Apply(i *Insumo) error {
	next := *i
	setIf(&next.Nome, p.Nome)
	setIf(&next.Tipo, p.Tipo)
	setIf(&next.Unidade, p.Unidade)
	setIf(&next.Categoria, p.Categoria)
	setIf(&next.Descricao, p.Descricao)
	setIf(&next.ValorUnitario, p.ValorUnitario)
	setIf(&next.EstoqueMinimo, p.EstoqueMinimo)
	setIf(&next.Fornecedor, p.Fornecedor)
	setIf(&next.CodigoReferencia, p.CodigoReferencia)
	if p.DataValidade != nil {
		next.DataValidade = p.DataValidade
	}
	if p.DataCompra != nil {
		next.DataCompra = p.DataCompra
	}
	setIf(&next.Observacoes, p.Observacoes)
	if err := next.validate(); err != nil {
		return err
	}
	*i = next
	return nil
}

type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "saida"
)

// StockMovement is an append-only stock ledger entry for one insumo. ValorTotal
// values the movement at the unit price in effect when it was made.
type StockMovement struct {
	TenantBase
	InsumoID          string          `gorm:"type:uuid;not null;index" json:"insumo_id"`
	Tipo              MovementType    `gorm:"type:varchar(10);not null;index" json:"tipo"`
	Quantidade        int             `gorm:"not null" json:"quantidade"`
	Motivo            string          `gorm:"type:varchar(255)" json:"motivo"`
	EstoqueAnterior   int             `gorm:"not null" json:"estoque_anterior"`
	EstoqueResultante int             `gorm:"not null" json:"estoque_resultante"`
	ValorTotal        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor_total"`
	UsuarioID         string          `gorm:"type:varchar(64)" json:"usuario_id"`
}

func (StockMovement) TableName() string {
	return "insumo_movimentacoes"
}

func NewStockMovement(tipo MovementType, quantidade int, motivo, usuarioID string) (*StockMovement, error) {
	m := &StockMovement{Tipo: tipo, Quantidade: quantidade, Motivo: strings.TrimSpace(motivo), UsuarioID: usuarioID}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StockMovement) validate() error {
	p := Problems{}
	p.Check(m.Tipo == MovementIn || m.Tipo == MovementOut, "tipo", "must be entrada or saida")
	p.Check(m.Quantidade > 0, "quantidade", "must be greater than zero")
	checkLength(p, "motivo", m.Motivo, 0, 255)
	return p.Err()
}
