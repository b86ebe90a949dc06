package domain

import (
	"strings"
	"time"
)

type User struct {
	TenantBase
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(30);not null;index" json:"role"`
	Permissions  StringList `json:"permissions"`
	LastLoginAt  *time.Time `gorm:"type:timestamp with time zone" json:"last_login_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) validate() error {
	p := Problems{}
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	checkLength(p, "name", u.Name, 2, 100)
	p.Check(u.Email != "", "email", "is required")
	checkEmail(p, "email", u.Email)
	p.Check(u.PasswordHash != "", "password", "is required")
	p.Check(IsValidRole(string(u.Role)), "role", "invalid role")
	for _, perm := range u.Permissions {
		if !IsValidPermission(perm) {
			p.Add("permissions", "unknown permission "+perm)
		}
	}
	return p.Err()
}

// Principal builds the session identity for this user.
func (u *User) Principal(segmentID string) Principal {
	return Principal{
		UserID:      u.ID,
		TenantID:    u.SubscriberID,
		SegmentID:   segmentID,
		Role:        u.Role,
		Permissions: EffectivePermissions(u.Role, u.Permissions),
	}
}

// UserDraft carries an already hashed password; hashing happens in the service.
type UserDraft struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Permissions  []string
}

func (d UserDraft) Build() (*User, error) {
	u := &User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		Permissions:  d.Permissions,
	}
	if u.Role == "" {
		u.Role = RoleCollaborator
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	return u, nil
}

type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *Role
	Permissions  *[]string
}

func (p UserPatch) Apply(u *User) error {
	next := *u
	setIf(&next.Name, p.Name)
	setIf(&next.Email, p.Email)
	setIf(&next.PasswordHash, p.PasswordHash)
	setIf(&next.Role, p.Role)
	if p.Permissions != nil {
		next.Permissions = *p.Permissions
	}
	if err := next.validate(); err != nil {
		return err
	}
	*u = next
	return nil
}
