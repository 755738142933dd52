package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/freelanceflow/internal/application/dto"
	"github.com/tu-usuario/freelanceflow/internal/domain"
)

// respondOK 200 con data en el sobre.
func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.OK(data))
}

// respondCreated 201 con data en el sobre.
func respondCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OK(data))
}

// respondMessage 200 con data y mensaje.
func respondMessage(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(dto.OKMessage(data, message))
}

// respondError mapea errores de dominio al status HTTP y al sobre de error.
// Los guards de negocio (cliente inactivo, factura pagada, duplicados) son
// 400: el contrato del sobre reserva 404 para no-encontrado y 401 para auth.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "error interno del servidor"

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status = fiber.StatusNotFound
		message = err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status = fiber.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status = fiber.StatusForbidden
		message = err.Error()
	case errors.Is(err, domain.ErrConflict):
		status = fiber.StatusConflict
		message = err.Error()
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrUsernameAlreadyExists),
		errors.Is(err, domain.ErrInvoicePaid),
		errors.Is(err, domain.ErrClientInactive),
		errors.Is(err, domain.ErrProjectInactive),
		errors.Is(err, domain.ErrClientNoEmail),
		errors.Is(err, domain.ErrProjectLocked):
		status = fiber.StatusBadRequest
		message = err.Error()
	}
	return c.Status(status).JSON(dto.Fail(message))
}

// respondBadBody 400 por body JSON no parseable.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo de la petición inválido"))
}
