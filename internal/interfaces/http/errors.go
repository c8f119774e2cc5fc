package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
)

// statusFor mapeia os erros sentinela do domínio para status HTTP e um código
// estável para o cliente.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingCredentials),
		errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrMissingName),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidOrders),
		errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrInvalidCodeFormat):
		return fiber.StatusBadRequest, "INVALID_CODE"
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrCodeNotFound):
		return fiber.StatusNotFound, "CODE_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// fail responde o erro já mapeado. A mensagem do sentinela vai ao cliente;
// erros internos não vazam detalhe.
func fail(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "erro interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
}
