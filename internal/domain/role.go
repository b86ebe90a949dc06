package domain

import "slices"

// Role represents a user role in the system
type Role string

const (
	// RoleSuperAdmin operates the platform across every subscriber
	RoleSuperAdmin Role = "SUPER_ADMIN"

	// RoleDirector is a platform operator with cross-subscriber read and write access
	RoleDirector Role = "DIRETOR"

	// RoleOwner owns a subscriber account and manages its users
	RoleOwner Role = "DONO_ASSINANTE"

	// RoleCollaborator is a clinic staff member with a restricted permission set
	RoleCollaborator Role = "COLABORADOR_NIVEL_2"
)

// ValidRoles contains all valid roles in the system
var ValidRoles = []Role{RoleSuperAdmin, RoleDirector, RoleOwner, RoleCollaborator}

// IsValidRole checks if a given role is valid
func IsValidRole(role string) bool {
	return slices.Contains(ValidRoles, Role(role))
}

// BypassesTenantScope lists the two operator roles exempt from subscriber
// filtering. Principal.Scope is the only caller.
func (r Role) BypassesTenantScope() bool {
	return r == RoleSuperAdmin || r == RoleDirector
}

// Elevated roles may grant roles and read audit views.
func (r Role) Elevated() bool {
	return r.BypassesTenantScope()
}

type Permission string

const (
	PermCreatePatient Permission = "CAN_CREATE_PATIENT"
	PermViewPatient   Permission = "CAN_VIEW_PATIENT"
	PermEditPatient   Permission = "CAN_EDIT_PATIENT"
	PermDeletePatient Permission = "CAN_DELETE_PATIENT"
)

var AllPermissions = []Permission{PermCreatePatient, PermViewPatient, PermEditPatient, PermDeletePatient}

var rolePermissions = map[Role][]Permission{
	RoleSuperAdmin:   AllPermissions,
	RoleDirector:     AllPermissions,
	RoleOwner:        AllPermissions,
	RoleCollaborator: {PermCreatePatient, PermViewPatient},
}

func IsValidPermission(p string) bool {
	return slices.Contains(AllPermissions, Permission(p))
}

// EffectivePermissions merges the role defaults with per-user grants.
func EffectivePermissions(role Role, custom []string) []string {
	out := make([]string, 0, len(AllPermissions))
	for _, p := range rolePermissions[role] {
		out = append(out, string(p))
	}
	for _, p := range custom {
		if IsValidPermission(p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
