package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ERP-L/ERP-FRONT-sub000/internal/application/dto"
	"github.com/ERP-L/ERP-FRONT-sub000/internal/domain"
)

// writeError traduce los errores de dominio al contrato HTTP. Los errores de
// validación del motor de movimientos son todos 400 con el detalle en message;
// las fallas del servicio de bodega se reportan como 502 sin reintentos.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrRemoteService):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmptyLines),
		errors.Is(err, domain.ErrMissingWarehouse),
		errors.Is(err, domain.ErrSameWarehouse),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrMissingBatch),
		errors.Is(err, domain.ErrMissingSerial),
		errors.Is(err, domain.ErrDuplicateBatchRow):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
