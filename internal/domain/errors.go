package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Ciclo de vida de facturas y cotizaciones.
	ErrImmutableState      = errors.New("el documento no admite cambios en su estado actual")
	ErrInvalidInvoiceState = errors.New("estado de factura inválido para la operación")
	ErrInvalidQuoteState   = errors.New("estado de cotización inválido para la operación")
	ErrIssuePrecondition   = errors.New("la factura no cumple las condiciones para emitirse")
	ErrVoidReasonRequired  = errors.New("anular requiere un motivo")

	// Asignación de secuencias fiscales (NCF).
	ErrSequenceExhausted = errors.New("secuencia fiscal agotada")
	ErrSequenceExpired   = errors.New("secuencia fiscal vencida")
	ErrSequenceInactive  = errors.New("secuencia fiscal inactiva")
	ErrSequenceMissing   = errors.New("no hay secuencia fiscal configurada para el tipo")
	ErrSequenceAmbiguous = errors.New("más de una secuencia fiscal activa para el tipo")
)
