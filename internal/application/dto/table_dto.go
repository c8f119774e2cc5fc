package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TableOrderPayload um item da comanda na borda HTTP.
type TableOrderPayload struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// CreateTableRequest entrada para abrir uma mesa.
type CreateTableRequest struct {
	AccessCode string              `json:"access_code"`
	Name       string              `json:"name"`
	WaiterName string              `json:"waiter_name"`
	Notes      string              `json:"notes"`
	Orders     []TableOrderPayload `json:"orders"`
}

// UpdateTableRequest atualização parcial (campo ausente = não alterar).
// Orders, quando presente, substitui a comanda inteira.
type UpdateTableRequest struct {
	Name       *string              `json:"name"`
	WaiterName *string              `json:"waiter_name"`
	Notes      *string              `json:"notes"`
	Orders     *[]TableOrderPayload `json:"orders"`
}

// TableResponse saída de uma mesa. Total é sempre o valor derivado pelo
// serviço, nunca o enviado pelo chamador.
type TableResponse struct {
	ID         string              `json:"id"`
	AccessCode string              `json:"access_code"`
	Name       string              `json:"name"`
	WaiterName string              `json:"waiter_name,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	Orders     []TableOrderPayload `json:"orders"`
	Total      decimal.Decimal     `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at,omitempty"`
}
