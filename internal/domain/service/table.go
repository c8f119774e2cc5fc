package service

import (
	"context"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

// TableChanges campos opcionais de atualização parcial (nil = não alterar).
// Orders substitui a comanda inteira quando presente.
type TableChanges struct {
	Name       *string
	WaiterName *string
	Notes      *string
	Orders     *[]entity.TableOrder
}

// UnsubscribeFunc cancela uma inscrição de mudanças.
type UnsubscribeFunc func()

// TableService define o porto de persistência e notificação de mesas (DIP).
// Contrato do serviço: em todo Create/Update o Total da mesa é recalculado a
// partir da comanda efetiva (entity.OrdersTotal) antes de persistir; o valor
// vindo do chamador é ignorado.
type TableService interface {
	ListByAccessCode(ctx context.Context, code string) ([]*entity.Table, error)
	Create(ctx context.Context, table *entity.Table) (*entity.Table, error)
	// GetByID retorna (nil, nil) quando a mesa não existe.
	GetByID(ctx context.Context, id string) (*entity.Table, error)
	Update(ctx context.Context, id string, changes TableChanges) (*entity.Table, error)
	Delete(ctx context.Context, id string) error
	// SubscribeByAccessCode registra onChange para o tenant e devolve a função
	// de cancelamento. Síncrono: não faz I/O bloqueante ao registrar.
	SubscribeByAccessCode(code string, onChange func(tables []*entity.Table)) (UnsubscribeFunc, error)
}
