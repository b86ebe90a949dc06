package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Patient is a person treated by a subscriber's clinic. CPF is unique per
// subscriber.
type Patient struct {
	TenantBase
	Name        string  `gorm:"type:varchar(255);not null;index" json:"name"`
	CPF         string  `gorm:"type:varchar(11);not null" json:"cpf"`
	RG          string  `gorm:"type:varchar(20)" json:"rg"`
	BirthDate   *Date   `gorm:"type:date" json:"birth_date"`
	Phone       string  `gorm:"type:varchar(11)" json:"phone"`
	Email       string  `gorm:"type:varchar(255)" json:"email"`
	Address     Address `gorm:"embedded" json:"address"`
	Observacoes string  `gorm:"type:text" json:"observacoes"`
}

func (Patient) TableName() string {
	return "patients"
}

func checkEmail(p Problems, field, email string) {
	if email == "" {
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		p.Add(field, "invalid email")
	}
}

func (pt *Patient) validate() error {
	p := Problems{}
	pt.Name = strings.TrimSpace(pt.Name)
	checkLength(p, "name", pt.Name, 3, 255)
	if cpf, err := NormalizeCPF(pt.CPF); err != nil {
		p.Add("cpf", err.Error())
	} else {
		pt.CPF = cpf
	}
	if pt.BirthDate != nil {
		p.Check(!pt.BirthDate.After(Today()), "birth_date", "must not be in the future")
	}
	if pt.Phone != "" {
		if phone, err := NormalizePhone(pt.Phone); err != nil {
			p.Add("phone", err.Error())
		} else {
			pt.Phone = phone
		}
	}
	pt.Email = strings.TrimSpace(strings.ToLower(pt.Email))
	checkEmail(p, "email", pt.Email)
	pt.Address.normalize(p)
	return p.Err()
}

// UpdateContactInfo replaces phone and email after validating both.
func (pt *Patient) UpdateContactInfo(phone, email *string, now time.Time) error {
	next := *pt
	setIf(&next.Phone, phone)
	setIf(&next.Email, email)
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch(now)
	*pt = next
	return nil
}

func (pt *Patient) UpdateAddress(addr Address, now time.Time) error {
	next := *pt
	next.Address = addr
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch(now)
	*pt = next
	return nil
}

func (pt *Patient) UpdatePersonalInfo(name, rg *string, birthDate *Date, now time.Time) error {
	next := *pt
	setIf(&next.Name, name)
	setIf(&next.RG, rg)
	if birthDate != nil {
		next.BirthDate = birthDate
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.Touch(now)
	*pt = next
	return nil
}

type PatientDraft struct {
	Name        string
	CPF         string
	RG          string
	BirthDate   *Date
	Phone       string
	Email       string
	Address     Address
	Observacoes string
}

func (d PatientDraft) Build() (*Patient, error) {
	pt := &Patient{
		Name:        d.Name,
		CPF:         d.CPF,
		RG:          d.RG,
		BirthDate:   d.BirthDate,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		Observacoes: d.Observacoes,
	}
	if err := pt.validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

// AddressPatch changes individual address parts.
type AddressPatch struct {
	CEP         *string
	Logradouro  *string
	Numero      *string
	Complemento *string
	Bairro      *string
	Cidade      *string
	UF          *string
}

func (p AddressPatch) merge(a Address) Address {
	setIf(&a.CEP, p.CEP)
	setIf(&a.Logradouro, p.Logradouro)
	setIf(&a.Numero, p.Numero)
	setIf(&a.Complemento, p.Complemento)
	setIf(&a.Bairro, p.Bairro)
	setIf(&a.Cidade, p.Cidade)
	setIf(&a.UF, p.UF)
	return a
}

type PatientPatch struct {
	Name        *string
	CPF         *string
	RG          *string
	BirthDate   *Date
	Phone       *string
	Email       *string
	Address     *AddressPatch
	Observacoes *string
}

// Apply routes each group of fields through the matching behavior method so
// the same rules hold for HTTP updates and direct calls.
func (p PatientPatch) Apply(pt *Patient) error {
	next := *pt
	now := next.UpdatedAt
	if p.Name != nil || p.RG != nil || p.BirthDate != nil {
		if err := next.UpdatePersonalInfo(p.Name, p.RG, p.BirthDate, now); err != nil {
			return err
		}
	}
	if p.Phone != nil || p.Email != nil {
		if err := next.UpdateContactInfo(p.Phone, p.Email, now); err != nil {
			return err
		}
	}
	if p.Address != nil {
		if err := next.UpdateAddress(p.Address.merge(next.Address), now); err != nil {
			return err
		}
	}
	setIf(&next.CPF, p.CPF)
	setIf(&next.Observacoes, p.Observacoes)
	if err := next.validate(); err != nil {
		return err
	}
	*pt = next
	return nil
}
