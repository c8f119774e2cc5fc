package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TableOrder é um item lançado na comanda de uma mesa.
type TableOrder struct {
	ID       string
	Name     string
	Price    decimal.Decimal // preço unitário, >= 0
	Quantity int64           // > 0
}

// Table representa uma mesa aberta no salão.
// Total é sempre derivado dos itens via OrdersTotal no momento da persistência;
// nunca vem do chamador.
type Table struct {
	ID         string
	AccessCode string // imutável após a criação
	Name       string
	WaiterName string
	Notes      string
	Orders     []TableOrder
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrdersTotal soma price * quantity de todos os itens da comanda.
func OrdersTotal(orders []TableOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Price.Mul(decimal.NewFromInt(o.Quantity)))
	}
	return total
}
