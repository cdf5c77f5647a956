package entity

import "time"

// Tenant representa una empresa cliente del sistema. Vive en el esquema public;
// todos sus datos de negocio viven en su propio esquema PostgreSQL (SchemaName).
// El tenant se resuelve por hostname en cada petición y se pasa explícitamente
// a cada caso de uso; nunca se guarda en estado global del proceso.
type Tenant struct {
	ID         string
	Name       string
	Slug       string
	SchemaName string
	Hostname   string
	RNC        string // Registro Nacional del Contribuyente (República Dominicana)
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
