package entity

import "time"

// Supplier representa un suplidor del tenant (compras).
type Supplier struct {
	ID        string
	Name      string
	RNC       string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
