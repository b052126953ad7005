package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
)

// respond escribe el sobre común con éxito.
func respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(dto.Envelope{Success: true, Data: data})
}

// respondList escribe un listado paginado.
func respondList[T any](c *fiber.Ctx, out *dto.ListResult[T]) error {
	items := out.Items
	if items == nil {
		items = []T{}
	}
	return c.JSON(dto.Envelope{Success: true, Data: items, Pagination: out.Pagination})
}

// respondMessage éxito sin datos.
func respondMessage(c *fiber.Ctx, msg string) error {
	return c.JSON(dto.Envelope{Success: true, Message: msg})
}

// abort error con código corto en message (MISSING_TOKEN, FORBIDDEN, ...).
func abort(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Message: code, Error: msg})
}

// statusFor traduce los errores de dominio a estado HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// fail responde el error de un caso de uso. Los 500 llevan el texto original.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.Envelope{Success: false, Error: err.Error()})
}
