package service

import (
	"context"
	"errors"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// PlanModuleService links modules to plans; both ends must exist and be active.
type PlanModuleService struct {
	*Resource[domain.PlanModule, domain.PlanModuleDraft, domain.PlanModulePatch]
	plans   repository.Store[domain.Plan]
	modules repository.Store[domain.Module]
}

func NewPlanModuleService(repo repository.Repository) *PlanModuleService {
	return &PlanModuleService{
		Resource: NewResource[domain.PlanModule, domain.PlanModuleDraft, domain.PlanModulePatch](repo.PlanModules()),
		plans:    repo.Plans(),
		modules:  repo.Modules(),
	}
}

func (s *PlanModuleService) Create(ctx context.Context, scope tenant.Scope, draft domain.PlanModuleDraft) (*domain.PlanModule, error) {
	p := domain.Problems{}
	if err := exists(ctx, scope, s.plans, draft.PlanID); err != nil {
		if !domain.IsNotFound(err) {
			return nil, err
		}
		p.Add("plan_id", "plan not found")
	}
	if err := exists(ctx, scope, s.modules, draft.ModuleID); err != nil {
		if !domain.IsNotFound(err) {
			return nil, err
		}
		p.Add("module_id", "module not found")
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return s.Resource.Create(ctx, scope, draft)
}

// NewSubscriber is the create input for a subscriber. Owner, when set, is
// written with the subscriber as its first DONO_ASSINANTE user.
type NewSubscriber struct {
	Subscriber domain.SubscriberDraft
	Owner      *NewOwner
}

// SubscriberService checks the optional segment and plan references.
type SubscriberService struct {
	*Resource[domain.Subscriber, domain.SubscriberDraft, domain.SubscriberPatch]
	subscribers repository.SubscriberRepository
	users       *UserService
	segments    repository.Store[domain.Segment]
	plans       repository.Store[domain.Plan]
}

func NewSubscriberService(repo repository.Repository, users *UserService) *SubscriberService {
	return &SubscriberService{
		Resource:    NewResource[domain.Subscriber, domain.SubscriberDraft, domain.SubscriberPatch](repo.Subscribers()),
		subscribers: repo.Subscribers(),
		users:       users,
		segments:    repo.Segments(),
		plans:       repo.Plans(),
	}
}

func (s *SubscriberService) checkRefs(ctx context.Context, scope tenant.Scope, segmentID, planID *string) error {
	p := domain.Problems{}
	if segmentID != nil && *segmentID != "" {
		if err := exists(ctx, scope, s.segments, *segmentID); err != nil {
			if !domain.IsNotFound(err) {
				return err
			}
			p.Add("segment_id", "segment not found")
		}
	}
	if planID != nil && *planID != "" {
		if err := exists(ctx, scope, s.plans, *planID); err != nil {
			if !domain.IsNotFound(err) {
				return err
			}
			p.Add("plan_id", "plan not found")
		}
	}
	return p.Err()
}

func (s *SubscriberService) Create(ctx context.Context, scope tenant.Scope, in NewSubscriber) (*domain.Subscriber, error) {
	if err := s.checkRefs(ctx, scope, in.Subscriber.SegmentID, in.Subscriber.PlanID); err != nil {
		return nil, err
	}
	if in.Owner == nil {
		return s.Resource.Create(ctx, scope, in.Subscriber)
	}
	return s.createWithOwner(ctx, in)
}

// Onboard is the self-service sign up. The owner is mandatory, the plan must
// be public and active, and the subscriber starts active.
func (s *SubscriberService) Onboard(ctx context.Context, in NewSubscriber) (*domain.Subscriber, error) {
	p := domain.Problems{}
	if in.Owner == nil {
		p.Add("owner", "is required")
	}
	var scope tenant.Scope
	var plan *domain.Plan
	if in.Subscriber.PlanID == nil || *in.Subscriber.PlanID == "" {
		p.Add("plan_id", "is required")
	} else {
		found, err := s.plans.GetByID(ctx, scope, *in.Subscriber.PlanID)
		switch {
		case domain.IsNotFound(err):
			p.Add("plan_id", "plan not found")
		case err != nil:
			return nil, err
		case !found.Publico:
			p.Add("plan_id", "plan is not available for sign up")
		default:
			plan = found
		}
	}
	if in.Subscriber.SegmentID == nil || *in.Subscriber.SegmentID == "" {
		p.Add("segment_id", "is required")
	} else if err := exists(ctx, scope, s.segments, *in.Subscriber.SegmentID); err != nil {
		if !domain.IsNotFound(err) {
			return nil, err
		}
		p.Add("segment_id", "segment not found")
	} else if plan != nil && plan.SegmentID != nil && *plan.SegmentID != *in.Subscriber.SegmentID {
		p.Add("plan_id", "plan is not offered to this segment")
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	in.Subscriber.Status = domain.SubscriberActive
	return s.createWithOwner(ctx, in)
}

func (s *SubscriberService) createWithOwner(ctx context.Context, in NewSubscriber) (*domain.Subscriber, error) {
	sub, subErr := in.Subscriber.Build()
	owner, ownerErr := s.users.owner(*in.Owner)
	if err := mergeProblems(subErr, prefixed("owner.", ownerErr)); err != nil {
		return nil, err
	}
	if err := s.subscribers.CreateWithOwner(ctx, sub, owner); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberService) Update(ctx context.Context, scope tenant.Scope, id string, patch domain.SubscriberPatch) (*domain.Subscriber, error) {
	if err := s.checkRefs(ctx, scope, patch.SegmentID, patch.PlanID); err != nil {
		return nil, err
	}
	return s.Resource.Update(ctx, scope, id, patch)
}

// Mine returns the subscriber the principal belongs to.
func (s *SubscriberService) Mine(ctx context.Context, p domain.Principal) (*domain.Subscriber, error) {
	return s.store.GetByID(ctx, tenant.For(p.TenantID), p.TenantID)
}

func exists[T any](ctx context.Context, scope tenant.Scope, store repository.Store[T], id string) error {
	_, err := store.GetByID(ctx, scope, id)
	return err
}

// prefixed renames the field keys of a validation error.
func prefixed(prefix string, err error) error {
	var de *domain.Error
	if !errors.As(err, &de) || de.Kind != domain.KindValidation {
		return err
	}
	fields := make(map[string]string, len(de.Fields))
	for k, v := range de.Fields {
		fields[prefix+k] = v
	}
	return domain.NewValidationError(de.Message, fields)
}

// mergeProblems folds validation errors into one; any other error wins.
func mergeProblems(errs ...error) error {
	p := domain.Problems{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var de *domain.Error
		if !errors.As(err, &de) || de.Kind != domain.KindValidation {
			return err
		}
		for k, v := range de.Fields {
			p.Add(k, v)
		}
	}
	return p.Err()
}

// PlanOffer is one module included in a plan, with the plan's terms for it.
type PlanOffer struct {
	Module domain.Module
	Terms  domain.PlanModule
}

// Catalog is the storefront read by prospects before they have an account.
// It only shows active rows, and only public plans.
type Catalog struct {
	segments    repository.Store[domain.Segment]
	plans       repository.Store[domain.Plan]
	planModules repository.Store[domain.PlanModule]
	modules     repository.Store[domain.Module]
}

func NewCatalog(repo repository.Repository) *Catalog {
	return &Catalog{
		segments:    repo.Segments(),
		plans:       repo.Plans(),
		planModules: repo.PlanModules(),
		modules:     repo.Modules(),
	}
}

func (c *Catalog) Plans(ctx context.Context, query repository.Query) (*repository.Page[domain.Plan], error) {
	query.Filters = append(query.Filters, repository.Eq("publico", true))
	items, total, err := c.plans.List(ctx, tenant.Scope{}, query)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, query.Page), nil
}

// Plan returns a public plan and its active modules.
func (c *Catalog) Plan(ctx context.Context, id string) (*domain.Plan, []PlanOffer, error) {
	plan, err := c.plans.GetByID(ctx, tenant.Scope{}, id)
	if err != nil {
		return nil, nil, err
	}
	if !plan.Publico {
		return nil, nil, domain.NewNotFoundError("plan")
	}
	links, _, err := c.planModules.List(ctx, tenant.Scope{}, repository.Query{
		Page:    repository.NewPagination(1, repository.MaxPageSize),
		Filters: []repository.Filter{repository.Eq("plan_id", plan.ID)},
	})
	if err != nil {
		return nil, nil, err
	}
	offers := make([]PlanOffer, 0, len(links))
	for _, link := range links {
		m, err := c.modules.GetByID(ctx, tenant.Scope{}, link.ModuleID)
		if domain.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		offers = append(offers, PlanOffer{Module: *m, Terms: link})
	}
	return plan, offers, nil
}

func (c *Catalog) Segments(ctx context.Context, query repository.Query) (*repository.Page[domain.Segment], error) {
	items, total, err := c.segments.List(ctx, tenant.Scope{}, query)
	if err != nil {
		return nil, err
	}
	return repository.NewPage(items, total, query.Page), nil
}
