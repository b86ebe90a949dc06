package domain

import (
	"slices"

	"github.com/kingrain94/clinic-admin-api/internal/tenant"
)

// Principal is the authenticated caller resolved from the session token.
type Principal struct {
	UserID      string
	TenantID    string
	SegmentID   string
	Role        Role
	Permissions []string
}

func (p Principal) Can(perm Permission) bool {
	return slices.Contains(p.Permissions, string(perm))
}

func (p Principal) HasAnyRole(roles ...Role) bool {
	return slices.Contains(roles, p.Role)
}

// Scope derives the tenant restriction for every repository call made on
// behalf of p. The operator roles get the unrestricted scope; nothing else does.
func (p Principal) Scope() tenant.Scope {
	if p.Role.BypassesTenantScope() {
		return tenant.Unrestricted(p.TenantID, string(p.Role))
	}
	return tenant.For(p.TenantID)
}
