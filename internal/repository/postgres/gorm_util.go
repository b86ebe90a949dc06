package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

var errNoTenant = domain.NewForbiddenError("a subscriber is required for this operation")

// scopeQuery adds the tenant predicate for tenant-owned tables. The operator
// exemption is the only path that returns db without it.
func scopeQuery(db *gorm.DB, scope tenant.Scope, tenantScoped bool) (*gorm.DB, error) {
	if !tenantScoped || scope.IsUnrestricted() {
		return db, nil
	}
	if scope.TenantID() == "" {
		return nil, errNoTenant
	}
	return db.Where("subscriber_id = ?", scope.TenantID()), nil
}

func applyFilters(db *gorm.DB, filters []repository.Filter) *gorm.DB {
	for _, f := range filters {
		col := clause.Column{Name: f.Column}
		switch f.Op {
		case repository.OpEq:
			db = db.Where(clause.Eq{Column: col, Value: f.Value})
		case repository.OpGte:
			db = db.Where(clause.Gte{Column: col, Value: f.Value})
		case repository.OpLte:
			db = db.Where(clause.Lte{Column: col, Value: f.Value})
		case repository.OpContains:
			pattern := "%" + escapeLike(fmt.Sprint(f.Value)) + "%"
			db = db.Where(clause.Expr{SQL: "? ILIKE ?", Vars: []any{col, pattern}})
		}
	}
	return db
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// validID rejects ids postgres would refuse to cast to uuid; such ids can
// never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// translateError maps gorm errors onto the domain taxonomy. Domain errors
// raised inside callbacks pass through untouched.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *domain.Error
	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError("resource")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError("resource already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewConflictError("resource conflicts with a related record", err)
	default:
		return domain.NewInfrastructureError(op, err)
	}
}
