package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP. Los handlers no
// inspeccionan errores por su cuenta: todo pasa por aquí.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrVoidReasonRequired):
		return respond(c, fiber.StatusBadRequest, "INVALID_INPUT", err)
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", err)
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", err)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", err)
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "DUPLICATE", err)
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", err)
	case errors.Is(err, domain.ErrImmutableState),
		errors.Is(err, domain.ErrInvalidInvoiceState),
		errors.Is(err, domain.ErrInvalidQuoteState):
		return respond(c, fiber.StatusConflict, "INVALID_STATE", err)
	case errors.Is(err, domain.ErrSequenceExhausted),
		errors.Is(err, domain.ErrSequenceExpired),
		errors.Is(err, domain.ErrSequenceInactive),
		errors.Is(err, domain.ErrSequenceMissing),
		errors.Is(err, domain.ErrSequenceAmbiguous):
		return respond(c, fiber.StatusConflict, "SEQUENCE_UNAVAILABLE", err)
	case errors.Is(err, domain.ErrIssuePrecondition):
		return respond(c, fiber.StatusUnprocessableEntity, "ISSUE_PRECONDITION", err)
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "INTERNAL",
			Message: "error interno del servidor",
		})
	}
}

func respond(c *fiber.Ctx, status int, code string, err error) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
