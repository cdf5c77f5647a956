package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
	MovementAdj = "ADJ"
)

// StockMovement registra una entrada, salida o ajuste de inventario.
// Reference apunta al documento origen (ID de factura en ventas).
type StockMovement struct {
	ID           string
	ProductID    string
	MovementType string
	Quantity     decimal.Decimal
	Reference    string
	CreatedBy    string
	CreatedAt    time.Time
}
