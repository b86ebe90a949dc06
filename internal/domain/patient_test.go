package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPatient(t *testing.T) *Patient {
	t.Helper()
	birth := NewDate(1990, time.March, 15)
	pt, err := PatientDraft{
		Name:      "Maria da Silva",
		CPF:       "529.982.247-25",
		BirthDate: &birth,
		Phone:     "(11) 98765-4321",
		Email:     "Maria@Exemplo.com.br",
		Address:   Address{CEP: "01310-100", Logradouro: "Av. Paulista", Numero: "1000", Cidade: "Sao Paulo", UF: "sp"},
	}.Build()
	require.NoError(t, err)
	return pt
}

func TestPatientDraft_Build(t *testing.T) {
	tomorrow := NewDate(time.Now().Year()+1, time.January, 1)

	tests := []struct {
		name      string
		draft     PatientDraft
		wantField string
	}{
		{name: "valid", draft: PatientDraft{Name: "Ana", CPF: "52998224725"}},
		{name: "name too short", draft: PatientDraft{Name: "Al", CPF: "52998224725"}, wantField: "name"},
		{name: "name too long", draft: PatientDraft{Name: strings.Repeat("a", 256), CPF: "52998224725"}, wantField: "name"},
		{name: "name at the limit", draft: PatientDraft{Name: strings.Repeat("a", 255), CPF: "52998224725"}},
		{name: "invalid cpf", draft: PatientDraft{Name: "Ana Souza", CPF: "12345678900"}, wantField: "cpf"},
		{name: "birth date in the future", draft: PatientDraft{Name: "Ana Souza", CPF: "52998224725", BirthDate: &tomorrow}, wantField: "birth_date"},
		{name: "invalid email", draft: PatientDraft{Name: "Ana Souza", CPF: "52998224725", Email: "ana@"}, wantField: "email"},
		{name: "invalid state", draft: PatientDraft{Name: "Ana Souza", CPF: "52998224725", Address: Address{UF: "XX"}}, wantField: "uf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt, err := tt.draft.Build()

			if tt.wantField == "" {
				require.NoError(t, err)
				assert.NotNil(t, pt)
				return
			}
			require.True(t, IsValidation(err))
			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Contains(t, de.Fields, tt.wantField)
		})
	}
}

func TestPatientDraft_Normalizes(t *testing.T) {
	pt := newPatient(t)

	assert.Equal(t, "52998224725", pt.CPF)
	assert.Equal(t, "11987654321", pt.Phone)
	assert.Equal(t, "maria@exemplo.com.br", pt.Email)
	assert.Equal(t, "01310100", pt.Address.CEP)
	assert.Equal(t, "SP", pt.Address.UF)
}

func TestPatientPatch_Apply(t *testing.T) {
	name := "Maria Souza"
	email := "maria.souza@exemplo.com.br"
	cidade := "Campinas"

	tests := []struct {
		name   string
		patch  PatientPatch
		verify func(t *testing.T, pt *Patient)
	}{
		{
			name:  "personal info",
			patch: PatientPatch{Name: &name},
			verify: func(t *testing.T, pt *Patient) {
				assert.Equal(t, name, pt.Name)
				assert.Equal(t, "maria@exemplo.com.br", pt.Email)
			},
		},
		{
			name:  "contact info",
			patch: PatientPatch{Email: &email},
			verify: func(t *testing.T, pt *Patient) {
				assert.Equal(t, email, pt.Email)
				assert.Equal(t, "11987654321", pt.Phone)
			},
		},
		{
			name:  "address merges with the stored parts",
			patch: PatientPatch{Address: &AddressPatch{Cidade: &cidade}},
			verify: func(t *testing.T, pt *Patient) {
				assert.Equal(t, cidade, pt.Address.Cidade)
				assert.Equal(t, "Av. Paulista", pt.Address.Logradouro)
				assert.Equal(t, "01310100", pt.Address.CEP)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := newPatient(t)

			require.NoError(t, tt.patch.Apply(pt))

			tt.verify(t, pt)
		})
	}
}

func TestPatientPatch_InvalidLeavesPatientUntouched(t *testing.T) {
	badCEP := "123"
	badPhone := "12"
	name := "Maria Souza"

	tests := []struct {
		name      string
		patch     PatientPatch
		wantField string
	}{
		{name: "invalid cep", patch: PatientPatch{Name: &name, Address: &AddressPatch{CEP: &badCEP}}, wantField: "cep"},
		{name: "invalid phone", patch: PatientPatch{Name: &name, Phone: &badPhone}, wantField: "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pt := newPatient(t)
			before := *pt

			err := tt.patch.Apply(pt)

			require.True(t, IsValidation(err))
			var de *Error
			require.ErrorAs(t, err, &de)
			assert.Contains(t, de.Fields, tt.wantField)
			assert.Equal(t, before, *pt)
		})
	}
}

func TestPatient_UpdatePersonalInfoTouches(t *testing.T) {
	pt := newPatient(t)
	later := pt.CreatedAt.Add(time.Hour)
	name := "Maria Souza"

	require.NoError(t, pt.UpdatePersonalInfo(&name, nil, nil, later))

	assert.Equal(t, name, pt.Name)
	assert.Equal(t, later, pt.UpdatedAt)
}

func TestAnamnesis(t *testing.T) {
	t.Run("draft needs patient and complaint", func(t *testing.T) {
		_, err := AnamnesisDraft{ChiefComplaint: "  "}.Build()

		var de *Error
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "is required", de.Fields["chief_complaint"])
		assert.Equal(t, "is required", de.Fields["patient_id"])
	})

	t.Run("short complaint", func(t *testing.T) {
		_, err := AnamnesisDraft{PatientID: "p-1", ChiefComplaint: "ai"}.Build()

		assert.True(t, IsValidation(err))
	})

	t.Run("patch keeps the patient", func(t *testing.T) {
		a, err := AnamnesisDraft{PatientID: "p-1", ChiefComplaint: "Dor de dente", Allergies: "Dipirona"}.Build()
		require.NoError(t, err)
		complaint := "Sensibilidade ao frio"

		require.NoError(t, AnamnesisPatch{ChiefComplaint: &complaint}.Apply(a))

		assert.Equal(t, "p-1", a.PatientID)
		assert.Equal(t, complaint, a.ChiefComplaint)
		assert.Equal(t, "Dipirona", a.Allergies)
	})
}
