package http

import (
	"context"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
	"github.com/comanda-app/comanda-api/pkg/logger"
)

// TableHandler rotas das mesas, incluindo o feed vivo por websocket.
type TableHandler struct {
	uc  *usecase.TableUseCase
	log *logger.Logger
}

// NewTableHandler constrói o handler de mesas.
func NewTableHandler(uc *usecase.TableUseCase, log *logger.Logger) *TableHandler {
	return &TableHandler{uc: uc, log: log}
}

// Create abre uma mesa no tenant do corpo.
func (h *TableHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID busca uma mesa; 404 quando não existe.
func (h *TableHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "mesa não encontrada"})
	}
	return c.JSON(out)
}

// Update atualização parcial de uma mesa. Comanda inválida rejeita a
// atualização inteira.
func (h *TableHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTableRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete fecha/remove uma mesa.
func (h *TableHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByCode listagem pública das mesas do tenant.
func (h *TableHandler) ListByCode(c *fiber.Ctx) error {
	out, err := h.uc.ListByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Live feed vivo das mesas do tenant por websocket: envia a lista completa na
// conexão e de novo a cada mudança. O cliente não envia nada útil; as leituras
// servem só para detectar o fechamento.
func (h *TableHandler) Live() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		code := conn.Params("code")

		// Escritas concorrentes na mesma conexão não são permitidas pelo
		// protocolo; o mutex serializa o push inicial e os do feed.
		var mu sync.Mutex
		push := func(tables []dto.TableResponse) {
			mu.Lock()
			defer mu.Unlock()
			if err := conn.WriteJSON(tables); err != nil {
				h.log.Debug().Err(err).Str("code", code).Msg("websocket write falhou")
			}
		}

		unsubscribe, err := h.uc.Subscribe(code, push)
		if err != nil {
			mu.Lock()
			_ = conn.WriteJSON(dto.ErrorResponse{Code: "INVALID_CODE", Message: err.Error()})
			mu.Unlock()
			conn.Close()
			return
		}
		defer unsubscribe()

		if initial, err := h.uc.ListByCode(context.Background(), code); err == nil {
			push(initial)
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
