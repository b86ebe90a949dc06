package dto

import (
	"time"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/service"
)

type CreateUserRequest struct {
	// SubscriberID places the user in another subscriber; operators only.
	SubscriberID string   `json:"subscriber_id" binding:"omitempty,uuid" example:"5f0c6a1e-8f0d-4c1e-9a8b-2f3c4d5e6f70"`
	Name         string   `json:"name" binding:"required,max=100" example:"Ana Lima"`
	Email        string   `json:"email" binding:"required,email" example:"ana@clinica.com.br"`
	Password     string   `json:"password" binding:"required,min=8,max=72" example:"s3nh4-f0rte"`
	Role         string   `json:"role" binding:"omitempty,oneof=SUPER_ADMIN DIRETOR DONO_ASSINANTE COLABORADOR_NIVEL_2" example:"COLABORADOR_NIVEL_2"`
	Permissions  []string `json:"permissions" example:"CAN_EDIT_PATIENT"`
}

func (r CreateUserRequest) ToDraft() service.NewUser {
	return service.NewUser{
		SubscriberID: r.SubscriberID,
		Name:         r.Name,
		Email:        r.Email,
		Password:     r.Password,
		Role:         domain.Role(r.Role),
		Permissions:  r.Permissions,
	}
}

type UpdateUserRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=100"`
	Email       *string   `json:"email" binding:"omitempty,email"`
	Password    *string   `json:"password" binding:"omitempty,min=8,max=72"`
	Role        *string   `json:"role" binding:"omitempty,oneof=SUPER_ADMIN DIRETOR DONO_ASSINANTE COLABORADOR_NIVEL_2"`
	Permissions *[]string `json:"permissions"`
}

func (r UpdateUserRequest) ToPatch() service.UserChanges {
	c := service.UserChanges{
		Name:        r.Name,
		Email:       r.Email,
		Password:    r.Password,
		Permissions: r.Permissions,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		c.Role = &role
	}
	return c
}

type UserResponse struct {
	TenantMeta
	Name        string     `json:"name" example:"Ana Lima"`
	Email       string     `json:"email" example:"ana@clinica.com.br"`
	Role        string     `json:"role" example:"COLABORADOR_NIVEL_2"`
	Permissions []string   `json:"permissions"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func FromUser(u *domain.User) UserResponse {
	perms := []string(u.Permissions)
	if perms == nil {
		perms = []string{}
	}
	return UserResponse{
		TenantMeta:  tenantMetaOf(u.TenantBase),
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: perms,
		LastLoginAt: u.LastLoginAt,
	}
}
