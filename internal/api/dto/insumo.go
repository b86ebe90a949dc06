package dto

import (
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
)

type InsumoFields struct {
	Nome             string       `json:"nome" binding:"required,max=255" example:"Luva de procedimento"`
	Tipo             string       `json:"tipo" binding:"required,max=100" example:"descartavel"`
	Unidade          string       `json:"unidade" binding:"required,max=50" example:"caixa"`
	Categoria        string       `json:"categoria" binding:"required,max=100" example:"EPI"`
	Descricao        string       `json:"descricao"`
	ValorUnitario    Decimal      `json:"valor_unitario" swaggertype:"number" example:"32.50"`
	EstoqueMinimo    int          `json:"estoque_minimo" binding:"gte=0" example:"5"`
	Fornecedor       string       `json:"fornecedor" binding:"max=255"`
	CodigoReferencia string       `json:"codigo_referencia" binding:"max=100"`
	DataValidade     *domain.Date `json:"data_validade" swaggertype:"string" example:"2026-12-31"`
	DataCompra       *domain.Date `json:"data_compra" swaggertype:"string" example:"2025-05-01"`
	Observacoes      string       `json:"observacoes"`
}

type CreateInsumoRequest struct {
	InsumoFields
	EstoqueAtual int `json:"estoque_atual" binding:"gte=0" example:"20"`
}

func (r CreateInsumoRequest) ToDraft() domain.InsumoDraft {
	return domain.InsumoDraft{
		Nome:             r.Nome,
		Tipo:             r.Tipo,
		Unidade:          r.Unidade,
		Categoria:        r.Categoria,
		Descricao:        r.Descricao,
		ValorUnitario:    r.ValorUnitario.Decimal,
		EstoqueMinimo:    r.EstoqueMinimo,
		EstoqueAtual:     r.EstoqueAtual,
		Fornecedor:       r.Fornecedor,
		CodigoReferencia: r.CodigoReferencia,
		DataValidade:     r.DataValidade,
		DataCompra:       r.DataCompra,
		Observacoes:      r.Observacoes,
	}
}

// UpdateInsumoRequest has no stock field: stock changes only through movements.
type UpdateInsumoRequest struct {
	Nome             *string      `json:"nome" binding:"omitempty,max=255"`
	Tipo             *string      `json:"tipo" binding:"omitempty,max=100"`
	Unidade          *string      `json:"unidade" binding:"omitempty,max=50"`
	Categoria        *string      `json:"categoria" binding:"omitempty,max=100"`
	Descricao        *string      `json:"descricao"`
	ValorUnitario    *Decimal     `json:"valor_unitario" swaggertype:"number"`
	EstoqueMinimo    *int         `json:"estoque_minimo" binding:"omitempty,gte=0"`
	Fornecedor       *string      `json:"fornecedor" binding:"omitempty,max=255"`
	CodigoReferencia *string      `json:"codigo_referencia" binding:"omitempty,max=100"`
	DataValidade     *domain.Date `json:"data_validade" swaggertype:"string"`
	DataCompra       *domain.Date `json:"data_compra" swaggertype:"string"`
	Observacoes      *string      `json:"observacoes"`
}

func (r UpdateInsumoRequest) ToPatch() domain.InsumoPatch {
	return domain.InsumoPatch{
		Nome:             r.Nome,
		Tipo:             r.Tipo,
		Unidade:          r.Unidade,
		Categoria:        r.Categoria,
		Descricao:        r.Descricao,
		ValorUnitario:    decimalPtr(r.ValorUnitario),
		EstoqueMinimo:    r.EstoqueMinimo,
		Fornecedor:       r.Fornecedor,
		CodigoReferencia: r.CodigoReferencia,
		DataValidade:     r.DataValidade,
		DataCompra:       r.DataCompra,
		Observacoes:      r.Observacoes,
	}
}

type InsumoResponse struct {
	TenantMeta
	InsumoFields
	EstoqueAtual int  `json:"estoque_atual" example:"20"`
	EstoqueBaixo bool `json:"estoque_baixo" example:"false"`
}

func FromInsumo(i *domain.Insumo) InsumoResponse {
	return InsumoResponse{
		TenantMeta: tenantMetaOf(i.TenantBase),
		InsumoFields: InsumoFields{
			Nome:             i.Nome,
			Tipo:             i.Tipo,
			Unidade:          i.Unidade,
			Categoria:        i.Categoria,
			Descricao:        i.Descricao,
			ValorUnitario:    NewDecimal(i.ValorUnitario),
			EstoqueMinimo:    i.EstoqueMinimo,
			Fornecedor:       i.Fornecedor,
			CodigoReferencia: i.CodigoReferencia,
			DataValidade:     i.DataValidade,
			DataCompra:       i.DataCompra,
			Observacoes:      i.Observacoes,
		},
		EstoqueAtual: i.EstoqueAtual,
		EstoqueBaixo: i.IsLowStock(),
	}
}

type StockMovementRequest struct {
	Tipo       string `json:"tipo" binding:"required,oneof=entrada saida" example:"saida"`
	Quantidade int    `json:"quantidade" binding:"required,gt=0" example:"3"`
	Motivo     string `json:"motivo" binding:"max=255" example:"uso em procedimento"`
}

type StockMovementResponse struct {
	ID                string    `json:"id"`
	InsumoID          string    `json:"insumo_id"`
	Tipo              string    `json:"tipo" example:"saida"`
	Quantidade        int       `json:"quantidade" example:"3"`
	Motivo            string    `json:"motivo"`
	EstoqueAnterior   int       `json:"estoque_anterior" example:"20"`
	EstoqueResultante int       `json:"estoque_resultante" example:"17"`
	ValorTotal        Decimal   `json:"valor_total" swaggertype:"number" example:"97.50"`
	UsuarioID         string    `json:"usuario_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromStockMovement(m *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:                m.ID,
		InsumoID:          m.InsumoID,
		Tipo:              string(m.Tipo),
		Quantidade:        m.Quantidade,
		Motivo:            m.Motivo,
		EstoqueAnterior:   m.EstoqueAnterior,
		EstoqueResultante: m.EstoqueResultante,
		ValorTotal:        NewDecimal(m.ValorTotal),
		UsuarioID:         m.UsuarioID,
		CreatedAt:         m.CreatedAt,
	}
}

type MovementResultResponse struct {
	Insumo       InsumoResponse        `json:"insumo"`
	Movimentacao StockMovementResponse `json:"movimentacao"`
}
