package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

// ProductFilter filtros opcionais de listagem. O serviço executa o filtro;
// o caso de uso apenas repassa.
type ProductFilter struct {
	Query    string // busca livre por nome/descrição
	Category string // vazio = todas
}

// ProductChanges campos opcionais de atualização parcial (nil = não alterar).
type ProductChanges struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	ImageURL    *string
}

// ProductService define o porto de persistência do cardápio (DIP).
type ProductService interface {
	ListByAccessCode(ctx context.Context, code string, filter ProductFilter) ([]*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, id string, changes ProductChanges) (*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
