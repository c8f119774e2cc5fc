package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/accesscode"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

// TableUseCase ciclo de vida das mesas e suas comandas.
type TableUseCase struct {
	tables service.TableService
	auth   service.AuthService
}

// NewTableUseCase constrói o caso de uso.
func NewTableUseCase(tables service.TableService, auth service.AuthService) *TableUseCase {
	return &TableUseCase{tables: tables, auth: auth}
}

// Create abre uma mesa. Ordem das checagens: código, nome, sessão.
// WaiterName e Notes passam por trim; vazios nunca viram string com espaços.
// Orders é repassado como veio — a validação de itens acontece no Update;
// o Total é derivado pelo serviço em qualquer caso.
func (uc *TableUseCase) Create(ctx context.Context, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	if !accesscode.IsValid(in.AccessCode) {
		return nil, domain.ErrInvalidCodeFormat
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	table := &entity.Table{
		ID:         uuid.New().String(),
		AccessCode: in.AccessCode,
		Name:       name,
		WaiterName: strings.TrimSpace(in.WaiterName),
		Notes:      strings.TrimSpace(in.Notes),
		Orders:     toEntityOrders(in.Orders),
		CreatedAt:  time.Now(),
	}
	created, err := uc.tables.Create(ctx, table)
	if err != nil {
		return nil, err
	}
	return toTableResponse(created), nil
}

// Update atualização parcial. Se Orders vier no payload, todos os itens são
// validados antes de qualquer efeito: um único item inválido rejeita a
// atualização inteira com ErrInvalidOrders, sem aplicação parcial.
func (uc *TableUseCase) Update(ctx context.Context, id string, in dto.UpdateTableRequest) (*dto.TableResponse, error) {
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	changes := service.TableChanges{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrMissingName
		}
		changes.Name = &name
	}
	if in.WaiterName != nil {
		w := strings.TrimSpace(*in.WaiterName)
		changes.WaiterName = &w
	}
	if in.Notes != nil {
		n := strings.TrimSpace(*in.Notes)
		changes.Notes = &n
	}
	if in.Orders != nil {
		for _, o := range *in.Orders {
			if !validOrder(o) {
				return nil, domain.ErrInvalidOrders
			}
		}
		orders := toEntityOrders(*in.Orders)
		changes.Orders = &orders
	}
	updated, err := uc.tables.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	return toTableResponse(updated), nil
}

// GetByID busca uma mesa. Exige sessão; delega o resto.
func (uc *TableUseCase) GetByID(ctx context.Context, id string) (*dto.TableResponse, error) {
	if err := uc.requireSession(ctx); err != nil {
		return nil, err
	}
	table, err := uc.tables.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, nil
	}
	return toTableResponse(table), nil
}

// Delete fecha/remove uma mesa. Exige sessão; delega o resto.
func (uc *TableUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.requireSession(ctx); err != nil {
		return err
	}
	return uc.tables.Delete(ctx, id)
}

// ListByCode lista as mesas do tenant. Pública: só o formato do código é
// exigido.
func (uc *TableUseCase) ListByCode(ctx context.Context, code string) ([]dto.TableResponse, error) {
	if !accesscode.IsValid(code) {
		return nil, domain.ErrInvalidCodeFormat
	}
	list, err := uc.tables.ListByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return toTableResponses(list), nil
}

// Subscribe registra onChange para as mesas do código e devolve a função de
// cancelamento. Síncrono por contrato; nenhum estado fica retido aqui.
func (uc *TableUseCase) Subscribe(code string, onChange func([]dto.TableResponse)) (service.UnsubscribeFunc, error) {
	if !accesscode.IsValid(code) {
		return nil, domain.ErrInvalidCodeFormat
	}
	return uc.tables.SubscribeByAccessCode(code, func(tables []*entity.Table) {
		onChange(toTableResponses(tables))
	})
}

func (uc *TableUseCase) requireSession(ctx context.Context) error {
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	return nil
}

// validOrder confere um item da comanda: nome presente, preço não negativo,
// quantidade positiva.
func validOrder(o dto.TableOrderPayload) bool {
	return o.Name != "" && o.Price.Sign() >= 0 && o.Quantity > 0
}

func toEntityOrders(in []dto.TableOrderPayload) []entity.TableOrder {
	if in == nil {
		return nil
	}
	out := make([]entity.TableOrder, 0, len(in))
	for _, o := range in {
		out = append(out, entity.TableOrder{ID: o.ID, Name: o.Name, Price: o.Price, Quantity: o.Quantity})
	}
	return out
}

func toOrderPayloads(in []entity.TableOrder) []dto.TableOrderPayload {
	out := make([]dto.TableOrderPayload, 0, len(in))
	for _, o := range in {
		out = append(out, dto.TableOrderPayload{ID: o.ID, Name: o.Name, Price: o.Price, Quantity: o.Quantity})
	}
	return out
}

func toTableResponse(t *entity.Table) *dto.TableResponse {
	if t == nil {
		return nil
	}
	return &dto.TableResponse{
		ID:         t.ID,
		AccessCode: t.AccessCode,
		Name:       t.Name,
		WaiterName: t.WaiterName,
		Notes:      t.Notes,
		Orders:     toOrderPayloads(t.Orders),
		Total:      t.Total,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func toTableResponses(list []*entity.Table) []dto.TableResponse {
	items := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTableResponse(t))
	}
	return items
}
