package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

// routeModule mounts one area of the API under /api/v1.
type routeModule struct {
	name     string
	register func(s *Server, api *gin.RouterGroup)
}

// ExpectedRouteModules is every area the API must serve.
var ExpectedRouteModules = []string{
	"auth",
	"users",
	"patients",
	"anamneses",
	"appointments",
	"costs",
	"insumos",
	"finance",
	"reports",
	"segments",
	"modules",
	"plans",
	"plan-modules",
	"subscribers",
	"public",
}

var routeModules = []routeModule{
	{name: "auth", register: registerAuth},
	{name: "users", register: registerUsers},
	{name: "patients", register: registerPatients},
	{name: "anamneses", register: registerAnamneses},
	{name: "appointments", register: registerAppointments},
	{name: "costs", register: registerCosts},
	{name: "insumos", register: registerInsumos},
	{name: "finance", register: registerFinance},
	{name: "reports", register: registerReports},
	{name: "segments", register: registerSegments},
	{name: "modules", register: registerModules},
	{name: "plans", register: registerPlans},
	{name: "plan-modules", register: registerPlanModules},
	{name: "subscribers", register: registerSubscribers},
	{name: "public", register: registerPublic},
}

func registerAuth(s *Server, api *gin.RouterGroup) {
	h := NewAuthHandler(s.services.Auth, s.metrics, s.cfg.CookieSecure)
	auth := api.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh-token", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}
	session := s.protected(api, "/auth")
	{
		session.GET("/me", h.Me)
		session.GET("/dashboard-type", h.DashboardType)
	}
}

func registerUsers(s *Server, api *gin.RouterGroup) {
	h := newResourceHandler(
		"User",
		s.services.Users,
		bindDraft[dto.CreateUserRequest, service.NewUser],
		bindPatch[dto.UpdateUserRequest, service.UserChanges],
		dto.FromUser,
		userFilters,
	)
	managers := s.auth.RequireRole(domain.RoleSuperAdmin, domain.RoleDirector, domain.RoleOwner)
	h.mount(s.protected(api, "/users", managers), s.tenantGuards())
}

func registerPatients(s *Server, api *gin.RouterGroup) {
	h := newResourceHandler(
		"Patient",
		s.services.Patients,
		bindDraft[dto.CreatePatientRequest, domain.PatientDraft],
		bindPatch[dto.UpdatePatientRequest, domain.PatientPatch],
		dto.FromPatient,
		patientFilters,
	)
	h.mount(s.protected(api, "/patients"), guards{
		read:   []gin.HandlerFunc{s.auth.RequirePermission(domain.PermViewPatient)},
		write:  []gin.HandlerFunc{s.auth.RequirePermission(domain.PermEditPatient)},
		create: []gin.HandlerFunc{s.auth.RequirePermission(domain.PermCreatePatient)},
		remove: []gin.HandlerFunc{s.auth.RequirePermission(domain.PermDeletePatient)},
		audit:  s.elevated(),
	})
}

// registerAnamneses nests under /patients and reuses the patient permissions.
func registerAnamneses(s *Server, api *gin.RouterGroup) {
	NewAnamnesisHandler(s.services.Anamneses).mount(s.protected(api, "/patients"), guards{
		read:   []gin.HandlerFunc{s.auth.RequirePermission(domain.PermViewPatient)},
		write:  []gin.HandlerFunc{s.auth.RequirePermission(domain.PermEditPatient)},
		remove: []gin.HandlerFunc{s.auth.RequirePermission(domain.PermDeletePatient)},
	})
}

func registerAppointments(s *Server, api *gin.RouterGroup) {
	NewAppointmentHandler(s.services.Appointments).mount(s.protected(api, "/appointments"), s.tenantGuards())
}

func registerCosts(s *Server, api *gin.RouterGroup) {
	costs := s.protected(api, "/costs")

	newResourceHandler(
		"Clinical cost",
		s.services.ClinicalCosts,
		bindDraft[dto.CreateClinicalCostRequest, domain.ClinicalCostDraft],
		bindPatch[dto.UpdateClinicalCostRequest, domain.ClinicalCostPatch],
		dto.FromClinicalCost,
		clinicalCostFilters,
	).mount(costs.Group("/clinicos"), s.tenantGuards())

	newResourceHandler(
		"Fixed cost",
		s.services.FixedCosts,
		bindDraft[dto.CreateFixedCostRequest, domain.FixedCostDraft],
		bindPatch[dto.UpdateFixedCostRequest, domain.FixedCostPatch],
		dto.FromFixedCost,
		fixedAndVariableCostFilters,
	).mount(costs.Group("/fixos"), s.tenantGuards())

	newResourceHandler(
		"Variable cost",
		s.services.VariableCosts,
		bindDraft[dto.CreateVariableCostRequest, domain.VariableCostDraft],
		bindPatch[dto.UpdateVariableCostRequest, domain.VariableCostPatch],
		dto.FromVariableCost,
		fixedAndVariableCostFilters,
	).mount(costs.Group("/variaveis"), s.tenantGuards())
}

func registerInsumos(s *Server, api *gin.RouterGroup) {
	insumos := s.protected(api, "/insumos")
	NewStockHandler(s.services.Stock, s.metrics).mount(insumos, s.tenantGuards())
	newResourceHandler(
		"Insumo",
		s.services.Insumos,
		bindDraft[dto.CreateInsumoRequest, domain.InsumoDraft],
		bindPatch[dto.UpdateInsumoRequest, domain.InsumoPatch],
		dto.FromInsumo,
		insumoFilters,
	).mount(insumos, s.tenantGuards())
}

func registerFinance(s *Server, api *gin.RouterGroup) {
	finance := s.protected(api, "/finance")
	h := NewFinanceHandler(s.services.Finance)
	h.mount(finance, s.tenantGuards())

	payables := finance.Group("/payables")
	newResourceHandler(
		"Payable",
		s.services.Payables,
		bindDraft[dto.CreatePayableRequest, domain.PayableDraft],
		bindPatch[dto.UpdatePayableRequest, domain.PayablePatch],
		dto.FromPayable,
		payableFilters,
	).mount(payables, s.tenantGuards())
	payables.POST("/:id/pay", h.PayPayable)

	receivables := finance.Group("/receivables")
	newResourceHandler(
		"Receivable",
		s.services.Receivables,
		bindDraft[dto.CreateReceivableRequest, domain.ReceivableDraft],
		bindPatch[dto.UpdateReceivableRequest, domain.ReceivablePatch],
		dto.FromReceivable,
		receivableFilters,
	).mount(receivables, s.tenantGuards())
	receivables.POST("/:id/receive", h.ReceiveReceivable)
}

func registerReports(s *Server, api *gin.RouterGroup) {
	NewReportHandler(s.services.Reports).mount(s.protected(api, "/reports"), s.tenantGuards())
}

func registerSegments(s *Server, api *gin.RouterGroup) {
	newResourceHandler(
		"Segment",
		s.services.Segments,
		bindDraft[dto.CreateSegmentRequest, domain.SegmentDraft],
		bindPatch[dto.UpdateSegmentRequest, domain.SegmentPatch],
		dto.FromSegment,
		nil,
	).mount(s.protected(api, "/segments"), s.catalogGuards())
}

func registerModules(s *Server, api *gin.RouterGroup) {
	newResourceHandler(
		"Module",
		s.services.Modules,
		bindDraft[dto.CreateModuleRequest, domain.ModuleDraft],
		bindPatch[dto.UpdateModuleRequest, domain.ModulePatch],
		dto.FromModule,
		nil,
	).mount(s.protected(api, "/modules"), s.catalogGuards())
}

func registerPlans(s *Server, api *gin.RouterGroup) {
	newResourceHandler(
		"Plan",
		s.services.Plans,
		bindDraft[dto.CreatePlanRequest, domain.PlanDraft],
		bindPatch[dto.UpdatePlanRequest, domain.PlanPatch],
		dto.FromPlan,
		nil,
	).mount(s.protected(api, "/plans"), s.catalogGuards())
}

func registerPlanModules(s *Server, api *gin.RouterGroup) {
	newResourceHandler(
		"Plan module",
		s.services.PlanModules,
		bindDraft[dto.CreatePlanModuleRequest, domain.PlanModuleDraft],
		bindPatch[dto.UpdatePlanModuleRequest, domain.PlanModulePatch],
		dto.FromPlanModule,
		planModuleFilters,
	).mount(s.protected(api, "/plan-modules"), s.catalogGuards())
}

func registerSubscribers(s *Server, api *gin.RouterGroup) {
	NewSubscriberHandler(s.services.Subscribers).mount(s.protected(api, "/subscribers"), s.elevated())
}

// registerPublic mounts the routes served without a session. Only the global
// rate limit applies.
func registerPublic(s *Server, api *gin.RouterGroup) {
	NewPublicHandler(s.services.Catalog, s.services.Onboarding).mount(api.Group("/public"))
}
