// Package tenant holds the row-level isolation policy: every repository call
// takes a Scope, and a Scope can only be built from a tenant id or through
// the audited operator exemption.
package tenant

// Scope is the tenant restriction applied to a persistence operation.
// The zero value matches nothing.
type Scope struct {
	tenantID     string
	unrestricted bool
	grantedTo    string
}

// For restricts operations to a single tenant.
func For(tenantID string) Scope {
	return Scope{tenantID: tenantID}
}

// Unrestricted lifts the tenant filter for an operator role. homeTenantID is
// still used to stamp rows the operator creates.
func Unrestricted(homeTenantID, grantedTo string) Scope {
	return Scope{tenantID: homeTenantID, unrestricted: true, grantedTo: grantedTo}
}

// TenantID is the tenant new rows are stamped with.
func (s Scope) TenantID() string { return s.tenantID }

func (s Scope) IsUnrestricted() bool { return s.unrestricted }

// GrantedTo names the role the exemption was granted to, for audit logs.
func (s Scope) GrantedTo() string { return s.grantedTo }

// Allows reports whether a row owned by tenantID is visible in this scope.
func (s Scope) Allows(tenantID string) bool {
	if s.unrestricted {
		return true
	}
	return s.tenantID != "" && s.tenantID == tenantID
}
