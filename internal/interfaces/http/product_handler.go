package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
)

// ProductHandler rotas do cardápio.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler constrói o handler de produtos.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create cria um item do cardápio no tenant do corpo.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update atualização parcial de um item.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete remove um item do cardápio.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByCode listagem pública do cardápio do tenant, com ?q= (busca textual
// insensível a acentos) e ?category= opcionais.
func (h *ProductHandler) ListByCode(c *fiber.Ctx) error {
	out, err := h.uc.ListByCode(c.UserContext(), c.Params("code"), c.Query("q"), c.Query("category"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
