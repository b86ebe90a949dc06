package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

func (s *ServerTestSuite) admin() string {
	return s.token(domain.Principal{
		UserID:      "adm-1",
		TenantID:    "platform",
		Role:        domain.RoleSuperAdmin,
		Permissions: domain.EffectivePermissions(domain.RoleSuperAdmin, nil),
	})
}

func (s *ServerTestSuite) seedCatalog() (segmentID, publicPlanID, privatePlanID string) {
	ctx := context.Background()
	seg, err := domain.SegmentDraft{Nome: "Odontologia"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Segments().Create(ctx, tenant.Scope{}, seg))
	plans := make([]string, 0, 2)
	for _, publico := range []bool{true, false} {
		p, err := domain.PlanDraft{Nome: "Plano", Preco: decimal.RequireFromString("199.90"), SegmentID: &seg.ID, Publico: publico}.Build()
		s.Require().NoError(err)
		s.Require().NoError(s.repo.Plans().Create(ctx, tenant.Scope{}, p))
		plans = append(plans, p.ID)
	}
	return seg.ID, plans[0], plans[1]
}

func (s *ServerTestSuite) login(email, password string) dto.SessionResponse {
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var session dto.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func decodeInto[T any](s *ServerTestSuite, body []byte) T {
	var v T
	s.Require().NoError(json.Unmarshal(body, &v))
	return v
}

func (s *ServerTestSuite) TestOperatorCreatesSubscriberWithOwner() {
	// Arrange
	body := map[string]any{
		"nome":      "Clinica Sorriso",
		"documento": "11.222.333/0001-81",
		"owner": map[string]string{
			"name":     "Joana Prado",
			"email":    "joana@sorriso.com.br",
			"password": "s3nh4-f0rte",
		},
	}

	// Act
	created := s.do(http.MethodPost, "/api/v1/subscribers", s.admin(), body)

	// Assert
	s.Require().Equal(http.StatusCreated, created.Code, created.Body.String())
	sub := decodeInto[map[string]any](s, created.Body.Bytes())
	session := s.login("joana@sorriso.com.br", "s3nh4-f0rte")
	mine := s.do(http.MethodGet, "/api/v1/subscribers/me", session.AccessToken, nil)
	s.Require().Equal(http.StatusOK, mine.Code, mine.Body.String())
	s.Equal(sub["id"], decodeInto[map[string]any](s, mine.Body.Bytes())["id"])
	users := s.do(http.MethodGet, "/api/v1/users", session.AccessToken, nil)
	s.Equal(http.StatusOK, users.Code)
}

func (s *ServerTestSuite) TestOperatorCreatesSubscriber_InvalidOwner() {
	// Act
	w := s.do(http.MethodPost, "/api/v1/subscribers", s.admin(), map[string]any{
		"nome":      "Clinica Sorriso",
		"documento": "11222333000181",
		"owner":     map[string]string{"name": "Joana Prado", "email": "not-an-email", "password": "s3nh4-f0rte"},
	})

	// Assert
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(decodeInto[dto.Error](s, w.Body.Bytes()).Errors, "email")
	n, err := s.repo.Subscribers().Count(context.Background(), tenant.Scope{})
	s.Require().NoError(err)
	s.Equal(int64(0), n)
}

func (s *ServerTestSuite) TestCreateUser_OperatorPlacesUserInSubscriber() {
	// Arrange
	sub, err := domain.SubscriberDraft{Nome: "Clinica Nova", Documento: "11444777000161"}.Build()
	s.Require().NoError(err)
	s.Require().NoError(s.repo.Subscribers().Create(context.Background(), tenant.Scope{}, sub))
	body := map[string]any{
		"subscriber_id": sub.ID,
		"name":          "Joana Prado",
		"email":         "joana@nova.com.br",
		"password":      "s3nh4-f0rte",
		"role":          "DONO_ASSINANTE",
	}

	// Act
	byAdmin := s.do(http.MethodPost, "/api/v1/users", s.admin(), body)
	body["email"] = "outra@nova.com.br"
	byOwner := s.do(http.MethodPost, "/api/v1/users", s.owner("sub-a"), body)

	// Assert
	s.Require().Equal(http.StatusCreated, byAdmin.Code, byAdmin.Body.String())
	s.Equal(sub.ID, decodeInto[map[string]any](s, byAdmin.Body.Bytes())["subscriber_id"])
	s.Equal(http.StatusForbidden, byOwner.Code)
	session := s.login("joana@nova.com.br", "s3nh4-f0rte")
	s.NotEmpty(session.AccessToken)
}

func (s *ServerTestSuite) TestPublicSignupThenLogin() {
	// Arrange
	segmentID, planID, _ := s.seedCatalog()

	// Act
	w := s.do(http.MethodPost, "/api/v1/public/subscribers", "", map[string]any{
		"name":        "Joana Prado",
		"clinic_name": "Clinica Sorriso",
		"email":       "joana@sorriso.com.br",
		"phone":       "11987654321",
		"document":    "11222333000181",
		"segment_id":  segmentID,
		"plan_id":     planID,
		"password":    "s3nh4-f0rte",
	})

	// Assert
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	resp := decodeInto[dto.SignupResponse](s, w.Body.Bytes())
	s.NotEmpty(resp.ID)
	session := s.login("joana@sorriso.com.br", "s3nh4-f0rte")
	dash := s.do(http.MethodGet, "/api/v1/auth/dashboard-type", session.AccessToken, nil)
	s.Equal(http.StatusOK, dash.Code)
	sub, err := s.repo.Subscribers().GetByID(context.Background(), tenant.Scope{}, resp.ID)
	s.Require().NoError(err)
	s.Equal(domain.SubscriberActive, sub.Status)
}

func (s *ServerTestSuite) TestPublicSignup_Rejections() {
	// Arrange
	segmentID, planID, privateID := s.seedCatalog()
	form := func(plan, document string) map[string]any {
		return map[string]any{
			"name":        "Joana Prado",
			"clinic_name": "Clinica Sorriso",
			"email":       "joana@sorriso.com.br",
			"document":    document,
			"segment_id":  segmentID,
			"plan_id":     plan,
			"password":    "s3nh4-f0rte",
		}
	}
	cases := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"private plan", form(privateID, "11222333000181"), "plan_id"},
		{"bad document", form(planID, "123"), "document"},
		{"short password", func() map[string]any { f := form(planID, "11222333000181"); f["password"] = "curta"; return f }(), "password"},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			// Act
			w := s.do(http.MethodPost, "/api/v1/public/subscribers", "", tc.body)

			// Assert
			s.Equal(http.StatusBadRequest, w.Code, w.Body.String())
			s.Contains(decodeInto[dto.Error](s, w.Body.Bytes()).Errors, tc.field)
		})
	}
}

func (s *ServerTestSuite) TestPublicCatalog() {
	// Arrange
	segmentID, planID, privateID := s.seedCatalog()

	// Act
	plans := s.do(http.MethodGet, "/api/v1/public/plans?segment_id="+segmentID, "", nil)
	detail := s.do(http.MethodGet, "/api/v1/public/plans/"+planID, "", nil)
	hidden := s.do(http.MethodGet, "/api/v1/public/plans/"+privateID, "", nil)
	segments := s.do(http.MethodGet, "/api/v1/public/segments", "", nil)
	badFilter := s.do(http.MethodGet, "/api/v1/public/plans?segment_id=abc", "", nil)

	// Assert
	s.Require().Equal(http.StatusOK, plans.Code, plans.Body.String())
	page := decodeInto[dto.PageResponse[map[string]any]](s, plans.Body.Bytes())
	s.Require().Equal(int64(1), page.Total)
	s.Equal(planID, page.Items[0]["id"])
	s.Equal(http.StatusOK, detail.Code)
	s.Contains(detail.Body.String(), `"modules":[]`)
	s.Equal(http.StatusNotFound, hidden.Code)
	s.Equal(http.StatusOK, segments.Code)
	s.Equal(int64(1), decodeInto[dto.PageResponse[map[string]any]](s, segments.Body.Bytes()).Total)
	s.Equal(http.StatusBadRequest, badFilter.Code)
}
