package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

// fakeTables implementa service.TableService derivando o total como o
// adaptador real faz.
type fakeTables struct {
	byID        map[string]*entity.Table
	created     []*entity.Table
	updateCalls int
	deleted     []string

	subscribed   []string
	lastOnChange func([]*entity.Table)
	unsubscribed int
}

func newFakeTables() *fakeTables {
	return &fakeTables{byID: map[string]*entity.Table{}}
}

func (f *fakeTables) ListByAccessCode(_ context.Context, code string) ([]*entity.Table, error) {
	var list []*entity.Table
	for _, t := range f.byID {
		if t.AccessCode == code {
			list = append(list, t)
		}
	}
	return list, nil
}

func (f *fakeTables) Create(_ context.Context, t *entity.Table) (*entity.Table, error) {
	t.Total = entity.OrdersTotal(t.Orders)
	f.created = append(f.created, t)
	f.byID[t.ID] = t
	return t, nil
}

func (f *fakeTables) GetByID(_ context.Context, id string) (*entity.Table, error) {
	return f.byID[id], nil
}

func (f *fakeTables) Update(_ context.Context, id string, changes service.TableChanges) (*entity.Table, error) {
	f.updateCalls++
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if changes.Name != nil {
		t.Name = *changes.Name
	}
	if changes.WaiterName != nil {
		t.WaiterName = *changes.WaiterName
	}
	if changes.Notes != nil {
		t.Notes = *changes.Notes
	}
	if changes.Orders != nil {
		t.Orders = *changes.Orders
	}
	t.Total = entity.OrdersTotal(t.Orders)
	return t, nil
}

func (f *fakeTables) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeTables) SubscribeByAccessCode(code string, onChange func([]*entity.Table)) (service.UnsubscribeFunc, error) {
	f.subscribed = append(f.subscribed, code)
	f.lastOnChange = onChange
	return func() { f.unsubscribed++ }, nil
}

func validTable() dto.CreateTableRequest {
	return dto.CreateTableRequest{
		AccessCode: "123456789",
		Name:       "Mesa 7",
		WaiterName: "  João  ",
		Notes:      " aniversário ",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestTableCreate_OrdemDasChecagens(t *testing.T) {
	tables := newFakeTables()
	uc := usecase.NewTableUseCase(tables, &sessionAuth{})

	// 1º código, 2º nome, 3º sessão.
	in := validTable()
	in.AccessCode = "123"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)

	in = validTable()
	in.Name = "  "
	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrMissingName)

	_, err = uc.Create(context.Background(), validTable())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, tables.created)
}

func TestTableCreate_AparaEspacos(t *testing.T) {
	tables := newFakeTables()
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	out, err := uc.Create(context.Background(), validTable())
	require.NoError(t, err)
	assert.Equal(t, "Mesa 7", out.Name)
	assert.Equal(t, "João", out.WaiterName)
	assert.Equal(t, "aniversário", out.Notes)
}

func TestTableCreate_TotalDerivadoDaComanda(t *testing.T) {
	tables := newFakeTables()
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	in := validTable()
	in.Orders = []dto.TableOrderPayload{
		{ID: "o1", Name: "Pizza", Price: dec("10"), Quantity: 2},
		{ID: "o2", Name: "Suco", Price: dec("5"), Quantity: 3},
	}
	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(dec("35")), "total vem da soma preço*quantidade, nunca do chamador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — validação atômica da comanda
// ──────────────────────────────────────────────────────────────────────────────

func seedTable(tables *fakeTables, id string) {
	tables.byID[id] = &entity.Table{ID: id, AccessCode: "123456789", Name: "Mesa 1"}
}

func TestTableUpdate_ComandaInvalidaRejeitaTudo(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	// Um item inválido entre válidos rejeita a atualização inteira, sem
	// nenhuma chamada ao serviço.
	invalidos := [][]dto.TableOrderPayload{
		{{Name: "Pizza", Price: dec("10"), Quantity: 2}, {Name: "", Price: dec("5"), Quantity: 1}},
		{{Name: "Suco", Price: dec("-1"), Quantity: 1}},
		{{Name: "Café", Price: dec("3"), Quantity: 0}},
		{{Name: "Petisco", Price: dec("8"), Quantity: -2}},
	}
	for _, orders := range invalidos {
		o := orders
		_, err := uc.Update(context.Background(), "t1", dto.UpdateTableRequest{Orders: &o})
		assert.ErrorIs(t, err, domain.ErrInvalidOrders)
	}
	assert.Zero(t, tables.updateCalls, "nenhum efeito parcial")
}

func TestTableUpdate_ItemGratuitoEhValido(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	orders := []dto.TableOrderPayload{{Name: "Cortesia", Price: decimal.Zero, Quantity: 1}}
	out, err := uc.Update(context.Background(), "t1", dto.UpdateTableRequest{Orders: &orders})
	require.NoError(t, err)
	assert.True(t, out.Total.IsZero())
}

func TestTableUpdate_SubstituiComandaERecalcula(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	tables.byID["t1"].Orders = []entity.TableOrder{{Name: "Antigo", Price: dec("99"), Quantity: 1}}
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	orders := []dto.TableOrderPayload{
		{Name: "Pizza", Price: dec("10"), Quantity: 2},
		{Name: "Suco", Price: dec("5"), Quantity: 3},
	}
	out, err := uc.Update(context.Background(), "t1", dto.UpdateTableRequest{Orders: &orders})
	require.NoError(t, err)
	require.Len(t, out.Orders, 2)
	assert.True(t, out.Total.Equal(dec("35")))
}

func TestTableUpdate_SemSessao(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	uc := usecase.NewTableUseCase(tables, &sessionAuth{})

	nome := "Mesa 2"
	_, err := uc.Update(context.Background(), "t1", dto.UpdateTableRequest{Name: &nome})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Zero(t, tables.updateCalls)
}

func TestTableUpdate_NomePresenteNaoPodeSerVazio(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	uc := usecase.NewTableUseCase(tables, collaborator("123456789"))

	vazio := "   "
	_, err := uc.Update(context.Background(), "t1", dto.UpdateTableRequest{Name: &vazio})
	assert.ErrorIs(t, err, domain.ErrMissingName)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / Delete / ListByCode
// ──────────────────────────────────────────────────────────────────────────────

func TestTableGetByID_ExigeSessao(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")

	uc := usecase.NewTableUseCase(tables, &sessionAuth{})
	_, err := uc.GetByID(context.Background(), "t1")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	uc = usecase.NewTableUseCase(tables, collaborator("123456789"))
	out, err := uc.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", out.ID)

	missing, err := uc.GetByID(context.Background(), "nao-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTableDelete_ExigeSessao(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")

	uc := usecase.NewTableUseCase(tables, &sessionAuth{})
	assert.ErrorIs(t, uc.Delete(context.Background(), "t1"), domain.ErrNotAuthenticated)

	uc = usecase.NewTableUseCase(tables, collaborator("123456789"))
	require.NoError(t, uc.Delete(context.Background(), "t1"))
	assert.Equal(t, []string{"t1"}, tables.deleted)
}

func TestTableList_PublicoSoExigeFormato(t *testing.T) {
	tables := newFakeTables()
	seedTable(tables, "t1")
	uc := usecase.NewTableUseCase(tables, &sessionAuth{})

	out, err := uc.ListByCode(context.Background(), "123456789")
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = uc.ListByCode(context.Background(), "123-456-789")
	assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)
}

// ──────────────────────────────────────────────────────────────────────────────
// Subscribe
// ──────────────────────────────────────────────────────────────────────────────

func TestTableSubscribe_EntregaListasMapeadas(t *testing.T) {
	tables := newFakeTables()
	uc := usecase.NewTableUseCase(tables, &sessionAuth{})

	var recebidas [][]dto.TableResponse
	unsub, err := uc.Subscribe("123456789", func(list []dto.TableResponse) {
		recebidas = append(recebidas, list)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"123456789"}, tables.subscribed)

	tables.lastOnChange([]*entity.Table{
		{ID: "t1", AccessCode: "123456789", Name: "Mesa 1", Total: dec("35")},
	})
	require.Len(t, recebidas, 1)
	require.Len(t, recebidas[0], 1)
	assert.Equal(t, "Mesa 1", recebidas[0][0].Name)

	unsub()
	assert.Equal(t, 1, tables.unsubscribed)
}

func TestTableSubscribe_FormatoInvalido(t *testing.T) {
	uc := usecase.NewTableUseCase(newFakeTables(), &sessionAuth{})
	_, err := uc.Subscribe("123", func([]dto.TableResponse) {})
	assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)
}
