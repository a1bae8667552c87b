package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/crisvega-dev/imprenta-stock/internal/application/dto"
	"github.com/crisvega-dev/imprenta-stock/internal/domain"
)

// domainError mapea errores de dominio a respuestas HTTP {code, message}.
// El mensaje lleva el detalle del error (faltante exacto, estado actual)
// para que el caller pueda reaccionar.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStateTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrImmutableTransaction), errors.Is(err, domain.ErrImmutableField):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IMMUTABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateLotNumber):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_LOT_NUMBER", Message: err.Error()})
	case errors.Is(err, domain.ErrLotInUse):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOT_IN_USE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		// ErrNegativeStock cae aquí a propósito: es un defecto interno,
		// nunca un error de usuario.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
