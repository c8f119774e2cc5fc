package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorias do cardápio (enum fechado).
const (
	CategoryBebidas    = "Bebidas"
	CategoryPizzas     = "Pizzas"
	CategoryPratos     = "Pratos"
	CategoryPetiscos   = "Petiscos"
	CategorySobremesas = "Sobremesas"
)

// Categories lista as categorias aceitas, na ordem exibida no cardápio.
var Categories = []string{
	CategoryBebidas,
	CategoryPizzas,
	CategoryPratos,
	CategoryPetiscos,
	CategorySobremesas,
}

// ValidCategory informa se a categoria pertence ao enum do cardápio.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Product é um item do cardápio, sempre vinculado a um código de acesso.
// AccessCode é imutável após a criação. Price é sempre > 0.
type Product struct {
	ID          string
	AccessCode  string
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
