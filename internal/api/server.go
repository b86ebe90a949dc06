package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
	"github.com/kingrain94/clinic-admin-api/internal/config"
	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/middleware"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// Services are the use cases behind the routes.
type Services struct {
	Auth          AuthService
	Users         ResourceService[domain.User, service.NewUser, service.UserChanges]
	Patients      ResourceService[domain.Patient, domain.PatientDraft, domain.PatientPatch]
	Anamneses     AnamnesisService
	Appointments  AppointmentService
	ClinicalCosts ResourceService[domain.ClinicalCost, domain.ClinicalCostDraft, domain.ClinicalCostPatch]
	FixedCosts    ResourceService[domain.FixedCost, domain.FixedCostDraft, domain.FixedCostPatch]
	VariableCosts ResourceService[domain.VariableCost, domain.VariableCostDraft, domain.VariableCostPatch]
	Insumos       ResourceService[domain.Insumo, domain.InsumoDraft, domain.InsumoPatch]
	Stock         StockService
	Payables      ResourceService[domain.Payable, domain.PayableDraft, domain.PayablePatch]
	Receivables   ResourceService[domain.Receivable, domain.ReceivableDraft, domain.ReceivablePatch]
	Finance       FinanceService
	Reports       ReportService
	Segments      ResourceService[domain.Segment, domain.SegmentDraft, domain.SegmentPatch]
	Modules       ResourceService[domain.Module, domain.ModuleDraft, domain.ModulePatch]
	Plans         ResourceService[domain.Plan, domain.PlanDraft, domain.PlanPatch]
	PlanModules   ResourceService[domain.PlanModule, domain.PlanModuleDraft, domain.PlanModulePatch]
	Subscribers   SubscriberService
	Catalog       CatalogService
	Onboarding    OnboardingService
}

// NewServices builds every use case over one repository.
func NewServices(repo repository.Repository, tokens *service.TokenManager, sessions service.SessionStore, archive service.ReportArchive) Services {
	users := service.NewUserService(repo)
	subscribers := service.NewSubscriberService(repo, users)
	return Services{
		Auth:          service.NewAuthService(repo, tokens, sessions),
		Users:         userResource{users},
		Patients:      service.NewResource[domain.Patient, domain.PatientDraft, domain.PatientPatch](repo.Patients()),
		Anamneses:     service.NewAnamnesisService(repo),
		Appointments:  service.NewAppointmentService(repo),
		ClinicalCosts: service.NewResource[domain.ClinicalCost, domain.ClinicalCostDraft, domain.ClinicalCostPatch](repo.ClinicalCosts()),
		FixedCosts:    service.NewResource[domain.FixedCost, domain.FixedCostDraft, domain.FixedCostPatch](repo.FixedCosts()),
		VariableCosts: service.NewResource[domain.VariableCost, domain.VariableCostDraft, domain.VariableCostPatch](repo.VariableCosts()),
		Insumos:       service.NewResource[domain.Insumo, domain.InsumoDraft, domain.InsumoPatch](repo.Insumos()),
		Stock:         service.NewStockService(repo),
		Payables:      service.NewResource[domain.Payable, domain.PayableDraft, domain.PayablePatch](repo.Payables()),
		Receivables:   service.NewReceivableService(repo),
		Finance:       service.NewFinanceService(repo),
		Reports:       service.NewReportService(repo, archive),
		Segments:      service.NewResource[domain.Segment, domain.SegmentDraft, domain.SegmentPatch](repo.Segments()),
		Modules:       service.NewResource[domain.Module, domain.ModuleDraft, domain.ModulePatch](repo.Modules()),
		Plans:         service.NewResource[domain.Plan, domain.PlanDraft, domain.PlanPatch](repo.Plans()),
		PlanModules:   service.NewPlanModuleService(repo),
		Subscribers:   subscribers,
		Catalog:       service.NewCatalog(repo),
		Onboarding:    subscribers,
	}
}

type Server struct {
	cfg        *config.Config
	services   Services
	auth       *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
	metrics    *middleware.Metrics
	logger     *logger.Logger
}

func NewServer(
	cfg *config.Config,
	services Services,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	metrics *middleware.Metrics,
	logger *logger.Logger,
) *Server {
	return &Server{
		cfg:        cfg,
		services:   services,
		auth:       auth,
		rateLimit:  rateLimit,
		validation: validation,
		metrics:    metrics,
		logger:     logger,
	}
}

// Router builds the engine with the operational endpoints and /api/v1.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(s.logger), s.metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.Error{Detail: "route not found"})
	})

	s.SetupRoutes(router.Group("/api/v1"))
	return router
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply security middleware first
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())
	api.Use(s.validation.ValidateRequestSize(s.cfg.MaxRequestSize))
	api.Use(s.validation.ValidateContentType("application/json"))

	// Per client IP
	api.Use(s.rateLimit.GlobalRateLimit(s.cfg.GlobalRateLimit))

	for _, m := range routeModules {
		m.register(s, api)
	}
}

// protected opens a group that requires a session and counts against the
// tenant's rate limit.
func (s *Server) protected(api *gin.RouterGroup, path string, extra ...gin.HandlerFunc) *gin.RouterGroup {
	handlers := append([]gin.HandlerFunc{s.auth.Authenticate(), s.rateLimit.TenantRateLimit()}, extra...)
	return api.Group(path, handlers...)
}

func (s *Server) elevated() []gin.HandlerFunc {
	return []gin.HandlerFunc{s.auth.RequireRole(domain.RoleSuperAdmin, domain.RoleDirector)}
}

func (s *Server) tenantGuards() guards {
	return guards{audit: s.elevated()}
}

// catalogGuards let any session read the reference data; only SUPER_ADMIN changes it.
func (s *Server) catalogGuards() guards {
	return guards{
		write: []gin.HandlerFunc{s.auth.RequireRole(domain.RoleSuperAdmin)},
		audit: s.elevated(),
	}
}
