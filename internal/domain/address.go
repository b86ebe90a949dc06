package domain

import (
	"fmt"
	"slices"
	"strings"
)

var states = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

// Address is embedded in Patient. All parts are optional, but the ones present
// must be well formed.
type Address struct {
	CEP         string `gorm:"type:varchar(8)" json:"cep"`
	Logradouro  string `gorm:"type:varchar(255)" json:"logradouro"`
	Numero      string `gorm:"type:varchar(20)" json:"numero"`
	Complemento string `gorm:"type:varchar(100)" json:"complemento"`
	Bairro      string `gorm:"type:varchar(100)" json:"bairro"`
	Cidade      string `gorm:"type:varchar(100)" json:"cidade"`
	UF          string `gorm:"type:varchar(2)" json:"uf"`
}

func NormalizeCEP(raw string) (string, error) {
	cep := onlyDigits(raw)
	if len(cep) != 8 {
		return "", fmt.Errorf("CEP must have 8 digits")
	}
	return cep, nil
}

func FormatCEP(cep string) string {
	if len(cep) != 8 {
		return cep
	}
	return cep[:5] + "-" + cep[5:]
}

func IsValidUF(uf string) bool {
	return slices.Contains(states, strings.ToUpper(uf))
}

// normalize validates the address in place.
func (a *Address) normalize(p Problems) {
	if a.CEP != "" {
		if cep, err := NormalizeCEP(a.CEP); err != nil {
			p.Add("cep", err.Error())
		} else {
			a.CEP = cep
		}
	}
	if a.UF != "" {
		a.UF = strings.ToUpper(strings.TrimSpace(a.UF))
		p.Check(IsValidUF(a.UF), "uf", "invalid state")
	}
}

// IsComplete reports whether the address can be used for correspondence.
func (a Address) IsComplete() bool {
	return a.CEP != "" && a.Logradouro != "" && a.Numero != "" && a.Cidade != "" && a.UF != ""
}
