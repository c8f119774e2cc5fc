package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/application/organization"
)

// AccessCodeHandler rotas do ciclo de vida do código de acesso.
type AccessCodeHandler struct {
	uc *organization.AccessCodeUseCase
}

// NewAccessCodeHandler constrói o handler de códigos.
func NewAccessCodeHandler(uc *organization.AccessCodeUseCase) *AccessCodeHandler {
	return &AccessCodeHandler{uc: uc}
}

// Generate cria uma organização com código único. Aceita chamada anônima.
func (h *AccessCodeHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Generate(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Validate valida o código digitado e, havendo sessão, vincula o usuário.
func (h *AccessCodeHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateCodeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Validate(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// History lista os códigos usados pelo usuário da sessão, mais recente
// primeiro. Sem sessão, lista vazia.
func (h *AccessCodeHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete remove a organização pelo código (rota administrativa).
func (h *AccessCodeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("code")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
