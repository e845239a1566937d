package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/regma/inventario-api/internal/application/dto"
	"github.com/regma/inventario-api/internal/domain"
	"github.com/regma/inventario-api/pkg/logger"
)

const genericInternalMessage = "Error interno del servidor"

func respondOK(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(dto.APIResponse{Success: true, Message: message, Data: data})
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.APIResponse{Success: false, Message: message})
}

// statusFor traduce la taxonomía de dominio a códigos HTTP.
func statusFor(err error) int {
	switch {
	case domain.IsClientError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrLedgerNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrConcurrentModification), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// errorResponder escribe errores de casos de uso con el sobre {success:false, message}.
// En producción los 500 llevan un mensaje genérico; en desarrollo se agrega el detalle.
type errorResponder struct {
	production bool
	log        *logger.Logger
}

func (r errorResponder) respond(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status != fiber.StatusInternalServerError {
		return respondError(c, status, err.Error())
	}
	r.log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	if r.production {
		return respondError(c, status, genericInternalMessage)
	}
	return respondError(c, status, genericInternalMessage+": "+err.Error())
}

// ErrorHandler manejador global de Fiber (rutas inexistentes, panics recuperados, límite de peticiones).
func ErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return respondError(c, fe.Code, fe.Message)
		}
		return errorResponder{production: production, log: log}.respond(c, err)
	}
}
