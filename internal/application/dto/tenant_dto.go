package dto

import "time"

// CreateTenantRequest alta de un tenant (solo administración de plataforma).
type CreateTenantRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Hostname string `json:"hostname"`
	RNC      string `json:"rnc"`
}

// TenantResponse tenant registrado. El nombre de esquema es interno y no se
// expone.
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Hostname  string    `json:"hostname"`
	RNC       string    `json:"rnc,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// SetRoleRequest cambio de rol de un usuario.
type SetRoleRequest struct {
	Role string `json:"role"`
}
