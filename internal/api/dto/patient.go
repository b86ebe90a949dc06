package dto

import "github.com/kingrain94/clinic-admin-api/internal/domain"

type AddressFields struct {
	CEP         string `json:"cep" example:"01310100"`
	Logradouro  string `json:"logradouro" example:"Av. Paulista"`
	Numero      string `json:"numero" example:"1000"`
	Complemento string `json:"complemento" example:"cj 12"`
	Bairro      string `json:"bairro" example:"Bela Vista"`
	Cidade      string `json:"cidade" example:"São Paulo"`
	UF          string `json:"uf" binding:"omitempty,len=2" example:"SP"`
}

func (a AddressFields) toDomain() domain.Address {
	return domain.Address(a)
}

type PatientFields struct {
	Name        string        `json:"name" binding:"required,max=255" example:"Maria Souza"`
	CPF         string        `json:"cpf" binding:"required" example:"52998224725"`
	RG          string        `json:"rg" binding:"max=20" example:"123456789"`
	BirthDate   *domain.Date  `json:"birth_date" swaggertype:"string" example:"1990-04-12"`
	Phone       string        `json:"phone" example:"11987654321"`
	Email       string        `json:"email" binding:"omitempty,email" example:"maria@example.com"`
	Address     AddressFields `json:"address"`
	Observacoes string        `json:"observacoes"`
}

type CreatePatientRequest struct {
	PatientFields
}

func (r CreatePatientRequest) ToDraft() domain.PatientDraft {
	return domain.PatientDraft{
		Name:        r.Name,
		CPF:         r.CPF,
		RG:          r.RG,
		BirthDate:   r.BirthDate,
		Phone:       r.Phone,
		Email:       r.Email,
		Address:     r.Address.toDomain(),
		Observacoes: r.Observacoes,
	}
}

type AddressPatchFields struct {
	CEP         *string `json:"cep"`
	Logradouro  *string `json:"logradouro"`
	Numero      *string `json:"numero"`
	Complemento *string `json:"complemento"`
	Bairro      *string `json:"bairro"`
	Cidade      *string `json:"cidade"`
	UF          *string `json:"uf" binding:"omitempty,len=2"`
}

// UpdatePatientRequest is a partial update: absent fields are left unchanged.
type UpdatePatientRequest struct {
	Name        *string             `json:"name" binding:"omitempty,max=255"`
	CPF         *string             `json:"cpf"`
	RG          *string             `json:"rg" binding:"omitempty,max=20"`
	BirthDate   *domain.Date        `json:"birth_date" swaggertype:"string"`
	Phone       *string             `json:"phone"`
	Email       *string             `json:"email" binding:"omitempty,email"`
	Address     *AddressPatchFields `json:"address"`
	Observacoes *string             `json:"observacoes"`
}

func (r UpdatePatientRequest) ToPatch() domain.PatientPatch {
	p := domain.PatientPatch{
		Name:        r.Name,
		CPF:         r.CPF,
		RG:          r.RG,
		BirthDate:   r.BirthDate,
		Phone:       r.Phone,
		Email:       r.Email,
		Observacoes: r.Observacoes,
	}
	if r.Address != nil {
		p.Address = &domain.AddressPatch{
			CEP:         r.Address.CEP,
			Logradouro:  r.Address.Logradouro,
			Numero:      r.Address.Numero,
			Complemento: r.Address.Complemento,
			Bairro:      r.Address.Bairro,
			Cidade:      r.Address.Cidade,
			UF:          r.Address.UF,
		}
	}
	return p
}

type PatientResponse struct {
	TenantMeta
	PatientFields
	CPFFormatado string `json:"cpf_formatado" example:"529.982.247-25"`
}

func FromPatient(p *domain.Patient) PatientResponse {
	return PatientResponse{
		TenantMeta: tenantMetaOf(p.TenantBase),
		PatientFields: PatientFields{
			Name:        p.Name,
			CPF:         p.CPF,
			RG:          p.RG,
			BirthDate:   p.BirthDate,
			Phone:       p.Phone,
			Email:       p.Email,
			Address:     AddressFields(p.Address),
			Observacoes: p.Observacoes,
		},
		CPFFormatado: domain.FormatCPF(p.CPF),
	}
}
