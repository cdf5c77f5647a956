// Package ncf implementa la composición y validación de Números de Comprobante
// Fiscal (NCF) de la DGII (República Dominicana). Un NCF es el prefijo del tipo
// seguido del número secuencial con relleno de ceros a 8 dígitos, ej: B0200001234.
package ncf

import "fmt"

// Tipos de comprobante fiscal soportados.
const (
	TipoCreditoFiscal  = "B01" // factura con valor de crédito fiscal
	TipoConsumo        = "B02" // consumidor final
	TipoGubernamental  = "B14" // regímenes especiales / gubernamental
	TipoExportacion    = "B15" // exportaciones
)

// padWidth dígitos del secuencial según la DGII.
const padWidth = 8

// IsValidType indica si t es un tipo de comprobante soportado.
func IsValidType(t string) bool {
	switch t {
	case TipoCreditoFiscal, TipoConsumo, TipoGubernamental, TipoExportacion:
		return true
	}
	return false
}

// Compose arma el NCF: prefijo + secuencial con ceros a la izquierda (8 dígitos).
func Compose(prefix string, number int64) string {
	return fmt.Sprintf("%s%0*d", prefix, padWidth, number)
}
