package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
)

// Mensajes visibles para el cliente.
const (
	DetailInvalidCredentials = "Authentication credentials is invalid."
	DetailUnauthenticated    = "Could not validate credentials."
	DetailForbidden          = "Not enough permissions!"
	DetailInternal           = "Internal server error."
)

// errorMapping traduce un error de dominio a status + detail. El orden importa:
// los errores específicos van antes que el genérico que envuelven.
type errorMapping struct {
	err    error
	status int
	detail string
}

var errorTable = []errorMapping{
	{domain.ErrInvalidCredentials, fiber.StatusBadRequest, DetailInvalidCredentials},
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, DetailUnauthenticated},
	{domain.ErrForbidden, fiber.StatusForbidden, DetailForbidden},
	{domain.ErrInvalidCategory, fiber.StatusBadRequest, "Invalid category ID"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "Email already exists."},
	{domain.ErrCPFAlreadyExists, fiber.StatusConflict, "CPF already exists."},
	{domain.ErrConflict, fiber.StatusConflict, "Resource already exists."},
	{domain.ErrNotFound, fiber.StatusNotFound, "Not found."},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, ""}, // detail = mensaje del error
}

// ErrorHandler es el fiber.ErrorHandler de la app: los handlers devuelven errores de dominio
// y aquí se convierten en {detail}. Los 5xx se loguean con la causa, que nunca sale al cliente.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		for _, m := range errorTable {
			if !errors.Is(err, m.err) {
				continue
			}
			detail := m.detail
			if detail == "" {
				detail = err.Error()
			}
			if m.status == fiber.StatusUnauthorized {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Detail: detail})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Detail: fe.Message})
		}

		logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: DetailInternal})
	}
}

// badRequest error para cuerpos o parámetros que no se pudieron parsear.
func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}
