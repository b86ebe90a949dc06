package api

import (
	"context"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

func (s *ServerTestSuite) patient(token, name, cpf string) string {
	w := s.do(http.MethodPost, "/api/v1/patients", token, map[string]any{"name": name, "cpf": cpf})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decodeInto[map[string]any](s, w.Body.Bytes())["id"].(string)
}

func (s *ServerTestSuite) TestDirectorCannotManageSuperAdmin() {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("s3nh4-f0rte"), bcrypt.MinCost)
	s.Require().NoError(err)
	root, err := domain.UserDraft{Name: "Raiz", Email: "raiz@plataforma.com", PasswordHash: string(hash), Role: domain.RoleSuperAdmin}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Users().Create(context.Background(), tenant.For("platform"), root))
	director := s.token(domain.Principal{UserID: "dir-1", TenantID: "platform", Role: domain.RoleDirector})
	path := "/api/v1/users/" + root.ID

	// Act
	deactivate := s.do(http.MethodPatch, path+"/deactivate", director, nil)
	activate := s.do(http.MethodPatch, path+"/activate", director, nil)
	del := s.do(http.MethodDelete, path, director, nil)
	byAdmin := s.do(http.MethodPatch, path+"/deactivate", s.admin(), nil)

	// Assert
	s.Equal(http.StatusForbidden, deactivate.Code)
	s.Equal(http.StatusForbidden, activate.Code)
	s.Equal(http.StatusForbidden, del.Code)
	s.Equal(http.StatusOK, byAdmin.Code)
}

func (s *ServerTestSuite) TestReceivable_PatientOfAnotherTenant() {
	// Arrange
	foreign := s.patient(s.owner("sub-b"), "Joao Pereira", "11144477735")
	own := s.patient(s.owner("sub-a"), "Maria Souza", "52998224725")
	body := map[string]any{
		"description": "Tratamento de canal",
		"amount":      "450.00",
		"due_date":    "2030-03-10",
		"patient_id":  foreign,
	}

	// Act
	rejected := s.do(http.MethodPost, "/api/v1/finance/receivables", s.owner("sub-a"), body)
	body["patient_id"] = own
	accepted := s.do(http.MethodPost, "/api/v1/finance/receivables", s.owner("sub-a"), body)
	id := decodeInto[map[string]any](s, accepted.Body.Bytes())["id"]
	relinked := s.do(http.MethodPatch, "/api/v1/finance/receivables/"+id.(string), s.owner("sub-a"), map[string]any{"patient_id": foreign})

	// Assert
	s.Equal(http.StatusBadRequest, rejected.Code)
	s.Equal("patient not found", decodeInto[dto.Error](s, rejected.Body.Bytes()).Errors["patient_id"])
	s.Equal(http.StatusCreated, accepted.Code)
	s.Equal(http.StatusBadRequest, relinked.Code)
}

func (s *ServerTestSuite) TestListFilters_RejectMalformedIDs() {
	cases := []struct {
		path  string
		field string
	}{
		{"/api/v1/finance/receivables?patient_id=abc", "patient_id"},
		{"/api/v1/appointments?patient_id=abc", "patient_id"},
		{"/api/v1/plan-modules?plan_id=abc", "plan_id"},
		{"/api/v1/plan-modules?module_id=abc", "module_id"},
	}
	for _, tc := range cases {
		s.Run(tc.path, func() {
			// Act
			w := s.do(http.MethodGet, tc.path, s.owner("sub-a"), nil)

			// Assert
			s.Equal(http.StatusBadRequest, w.Code)
			s.Equal("must be a valid UUID", decodeInto[dto.Error](s, w.Body.Bytes()).Errors[tc.field])
		})
	}
}

func (s *ServerTestSuite) TestBindError_NamesTheFieldWithoutDecoderText() {
	// Act
	w := s.do(http.MethodPost, "/api/v1/finance/receivables", s.owner("sub-a"), map[string]any{
		"description": "Tratamento de canal",
		"amount":      "abc",
		"due_date":    "2030-03-10",
	})

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"detail":"validation failed","errors":{"amount":"has an invalid value"}}`, w.Body.String())
}

func (s *ServerTestSuite) TestAnamneses() {
	// Arrange
	owner := s.owner("sub-a")
	patientID := s.patient(owner, "Maria Souza", "52998224725")
	siblingID := s.patient(owner, "Joao Pereira", "11144477735")
	base := "/api/v1/patients/" + patientID + "/anamneses"

	// Act
	created := s.do(http.MethodPost, base, owner, map[string]any{
		"chief_complaint": "Dor ao mastigar",
		"allergies":       "Penicilina",
	})
	s.Require().Equal(http.StatusCreated, created.Code, created.Body.String())
	id := decodeInto[map[string]any](s, created.Body.Bytes())["id"].(string)
	list := s.do(http.MethodGet, base, owner, nil)
	updated := s.do(http.MethodPatch, base+"/"+id, owner, map[string]any{"medications": "Losartana 50mg"})
	wrongPatient := s.do(http.MethodGet, "/api/v1/patients/"+siblingID+"/anamneses/"+id, owner, nil)
	otherTenant := s.do(http.MethodGet, base+"/"+id, s.owner("sub-b"), nil)
	deleted := s.do(http.MethodDelete, base+"/"+id, owner, nil)
	gone := s.do(http.MethodGet, base+"/"+id, owner, nil)

	// Assert
	s.Equal(patientID, decodeInto[map[string]any](s, created.Body.Bytes())["patient_id"])
	s.Equal(int64(1), decodeInto[dto.PageResponse[map[string]any]](s, list.Body.Bytes()).Total)
	s.Require().Equal(http.StatusOK, updated.Code, updated.Body.String())
	s.Equal("Losartana 50mg", decodeInto[map[string]any](s, updated.Body.Bytes())["medications"])
	s.Equal("Penicilina", decodeInto[map[string]any](s, updated.Body.Bytes())["allergies"])
	s.Equal(http.StatusNotFound, wrongPatient.Code)
	s.Equal(http.StatusNotFound, otherTenant.Code)
	s.Equal(http.StatusNoContent, deleted.Code)
	s.Equal(http.StatusNotFound, gone.Code)
}

func (s *ServerTestSuite) TestAnamneses_CollaboratorCanReadButNotWrite() {
	// Arrange
	owner := s.owner("sub-a")
	patientID := s.patient(owner, "Maria Souza", "52998224725")
	collaborator := s.token(domain.Principal{
		UserID:      "col-1",
		TenantID:    "sub-a",
		Role:        domain.RoleCollaborator,
		Permissions: domain.EffectivePermissions(domain.RoleCollaborator, nil),
	})
	base := "/api/v1/patients/" + patientID + "/anamneses"

	// Act
	read := s.do(http.MethodGet, base, collaborator, nil)
	write := s.do(http.MethodPost, base, collaborator, map[string]any{"chief_complaint": "Dor ao mastigar"})

	// Assert
	s.Equal(http.StatusOK, read.Code)
	s.Equal(http.StatusForbidden, write.Code)
}
