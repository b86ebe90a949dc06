package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/service"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
	"github.com/kingrain94/clinic-admin-api/pkg/logger"
)

// Catalog is the reference data file read by `clinicctl seed`.
type Catalog struct {
	Segments []struct {
		Nome      string `yaml:"nome"`
		Descricao string `yaml:"descricao"`
	} `yaml:"segments"`
	Modules []struct {
		Nome      string         `yaml:"nome"`
		Codigo    string         `yaml:"codigo"`
		Descricao string         `yaml:"descricao"`
		Config    map[string]any `yaml:"config"`
	} `yaml:"modules"`
	Plans []struct {
		Nome          string `yaml:"nome"`
		Descricao     string `yaml:"descricao"`
		Preco         string `yaml:"preco"`
		CicloCobranca string `yaml:"ciclo_cobranca"`
		Segment       string `yaml:"segment"`
		Publico       bool   `yaml:"publico"`
		Modules       []struct {
			Codigo    string `yaml:"codigo"`
			Preco     string `yaml:"preco"`
			IsFree    bool   `yaml:"is_free"`
			TrialDays int    `yaml:"trial_days"`
		} `yaml:"modules"`
	} `yaml:"plans"`
	Platform struct {
		Nome      string `yaml:"nome"`
		Documento string `yaml:"documento"`
		Email     string `yaml:"email"`
	} `yaml:"platform"`
}

func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return &c, nil
}

// AdminAccount is the first SUPER_ADMIN, created inside the platform subscriber.
type AdminAccount struct {
	Name     string
	Email    string
	Password string
}

// Seeder writes the catalogue. Entries that already exist, matched by name or
// code, are left untouched so the command can be re-run.
type Seeder struct {
	repo   repository.Repository
	users  *service.UserService
	logger *logger.Logger
	scope  tenant.Scope
}

func NewSeeder(repo repository.Repository, logger *logger.Logger) *Seeder {
	return &Seeder{
		repo:   repo,
		users:  service.NewUserService(repo),
		logger: logger,
		scope:  tenant.Unrestricted("", string(domain.RoleSuperAdmin)),
	}
}

func findOne[T any](ctx context.Context, scope tenant.Scope, store repository.Store[T], filter repository.Filter) (*T, error) {
	items, _, err := store.List(ctx, scope, repository.Query{
		Page:    repository.NewPagination(1, 1),
		Filters: []repository.Filter{filter},
	})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func ensure[T any, D interface{ Build() (*T, error) }](ctx context.Context, scope tenant.Scope, store repository.Store[T], filter repository.Filter, draft D) (*T, bool, error) {
	existing, err := findOne(ctx, scope, store, filter)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	entity, err := draft.Build()
	if err != nil {
		return nil, false, err
	}
	if err := store.Create(ctx, scope, entity); err != nil {
		return nil, false, err
	}
	return entity, true, nil
}

func parseMoney(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q", field, raw)
	}
	return d, nil
}

// Seed loads the catalogue, the platform subscriber and, when admin is set,
// the first SUPER_ADMIN.
func (s *Seeder) Seed(ctx context.Context, c *Catalog, admin *AdminAccount) error {
	segments := map[string]string{}
	for _, in := range c.Segments {
		seg, created, err := ensure(ctx, s.scope, s.repo.Segments(), repository.Eq("nome", in.Nome),
			domain.SegmentDraft{Nome: in.Nome, Descricao: in.Descricao})
		if err != nil {
			return fmt.Errorf("segment %q: %w", in.Nome, err)
		}
		segments[in.Nome] = seg.ID
		s.report("segment", in.Nome, created)
	}

	modules := map[string]string{}
	for _, in := range c.Modules {
		code := strings.ToUpper(strings.TrimSpace(in.Codigo))
		mod, created, err := ensure(ctx, s.scope, s.repo.Modules(), repository.Eq("codigo", code),
			domain.ModuleDraft{Nome: in.Nome, Codigo: in.Codigo, Descricao: in.Descricao, Config: in.Config})
		if err != nil {
			return fmt.Errorf("module %q: %w", in.Codigo, err)
		}
		modules[mod.Codigo] = mod.ID
		s.report("module", in.Codigo, created)
	}

	for _, in := range c.Plans {
		preco, err := parseMoney("preco", in.Preco)
		if err != nil {
			return fmt.Errorf("plan %q: %w", in.Nome, err)
		}
		draft := domain.PlanDraft{
			Nome:          in.Nome,
			Descricao:     in.Descricao,
			Preco:         preco,
			CicloCobranca: domain.BillingCycle(in.CicloCobranca),
			Publico:       in.Publico,
		}
		if in.Segment != "" {
			id, ok := segments[in.Segment]
			if !ok {
				return fmt.Errorf("plan %q: unknown segment %q", in.Nome, in.Segment)
			}
			draft.SegmentID = &id
		}
		plan, created, err := ensure(ctx, s.scope, s.repo.Plans(), repository.Eq("nome", in.Nome), draft)
		if err != nil {
			return fmt.Errorf("plan %q: %w", in.Nome, err)
		}
		s.report("plan", in.Nome, created)
		if !created {
			continue
		}

		for _, pm := range in.Modules {
			moduleID, ok := modules[strings.ToUpper(strings.TrimSpace(pm.Codigo))]
			if !ok {
				return fmt.Errorf("plan %q: unknown module %q", in.Nome, pm.Codigo)
			}
			link := domain.PlanModuleDraft{PlanID: plan.ID, ModuleID: moduleID, IsFree: pm.IsFree, TrialDays: pm.TrialDays}
			if pm.Preco != "" {
				p, err := parseMoney("preco", pm.Preco)
				if err != nil {
					return fmt.Errorf("plan %q module %q: %w", in.Nome, pm.Codigo, err)
				}
				link.Preco = &p
			}
			entity, err := link.Build()
			if err != nil {
				return fmt.Errorf("plan %q module %q: %w", in.Nome, pm.Codigo, err)
			}
			if err := s.repo.PlanModules().Create(ctx, s.scope, entity); err != nil {
				return fmt.Errorf("plan %q module %q: %w", in.Nome, pm.Codigo, err)
			}
		}
	}

	if c.Platform.Documento == "" {
		return nil
	}
	doc, err := domain.NormalizeDocument(c.Platform.Documento)
	if err != nil {
		return fmt.Errorf("platform subscriber: %w", err)
	}
	platform, created, err := ensure(ctx, s.scope, repository.Store[domain.Subscriber](s.repo.Subscribers()), repository.Eq("documento", doc), domain.SubscriberDraft{
		Nome:      c.Platform.Nome,
		Documento: doc,
		Email:     c.Platform.Email,
		Status:    domain.SubscriberActive,
	})
	if err != nil {
		return fmt.Errorf("platform subscriber: %w", err)
	}
	s.report("subscriber", platform.Nome, created)

	if admin == nil || admin.Email == "" {
		return nil
	}
	if _, err := s.repo.Users().GetByEmail(ctx, admin.Email); err == nil {
		s.report("user", admin.Email, false)
		return nil
	} else if !domain.IsNotFound(err) {
		return err
	}
	actor := domain.Principal{TenantID: platform.ID, Role: domain.RoleSuperAdmin}
	if _, err := s.users.Register(ctx, actor, service.NewUser{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
		Role:     domain.RoleSuperAdmin,
	}); err != nil {
		return fmt.Errorf("super admin: %w", err)
	}
	s.report("user", admin.Email, true)
	return nil
}

func (s *Seeder) report(kind, name string, created bool) {
	if created {
		s.logger.Infof("created %s %s", kind, name)
		return
	}
	s.logger.Infof("kept existing %s %s", kind, name)
}
