package entity

import "time"

// Customer representa un cliente del tenant.
// NCFType es el tipo de comprobante que se le emite: B01 si factura con crédito
// fiscal (tiene RNC), B02 consumidor final, B14 gubernamental, B15 exportación.
type Customer struct {
	ID        string
	Name      string
	RNC       string // RNC o cédula
	NCFType   string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
