package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
	"github.com/comanda-app/comanda-api/internal/infrastructure/realtime"
)

var _ service.TableService = (*TableRepo)(nil)

// TableRepo implementação do porto TableService sobre PostgreSQL.
// A comanda é guardada como JSONB; o total é SEMPRE recalculado aqui a partir
// da comanda efetiva antes de persistir — o valor do chamador é ignorado.
type TableRepo struct {
	q   Querier
	hub *realtime.Hub
}

// NewTableRepository constrói o adaptador. hub pode ser nil (sem feed vivo).
func NewTableRepository(q Querier, hub *realtime.Hub) *TableRepo {
	return &TableRepo{q: q, hub: hub}
}

// orderRow forma persistida de um item da comanda.
type orderRow struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

const tableColumns = `id, access_code, name, waiter_name, notes, orders, total, created_at, updated_at`

// ListByAccessCode lista as mesas do tenant, mais recentes primeiro.
func (r *TableRepo) ListByAccessCode(ctx context.Context, code string) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE access_code = $1 ORDER BY created_at DESC`, code)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Create persiste a mesa com o total derivado da comanda.
func (r *TableRepo) Create(ctx context.Context, t *entity.Table) (*entity.Table, error) {
	t.Total = entity.OrdersTotal(t.Orders)
	ordersJSON, err := marshalOrders(t.Orders)
	if err != nil {
		return nil, err
	}
	query := `
		INSERT INTO tables (` + tableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.AccessCode, t.Name, t.WaiterName, t.Notes,
		ordersJSON, t.Total, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert table: %w", err)
	}
	r.notify(t.AccessCode)
	return t, nil
}

// GetByID busca uma mesa. Retorna (nil, nil) se não existe.
func (r *TableRepo) GetByID(ctx context.Context, id string) (*entity.Table, error) {
	row := r.q.QueryRow(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = $1`, id)
	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Update aplica as mudanças parciais e recalcula o total sobre a comanda
// efetiva (a nova, se veio; a existente, se não).
func (r *TableRepo) Update(ctx context.Context, id string, changes service.TableChanges) (*entity.Table, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
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
	t.UpdatedAt = time.Now()

	ordersJSON, err := marshalOrders(t.Orders)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE tables SET name = $2, waiter_name = $3, notes = $4, orders = $5, total = $6, updated_at = $7
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		t.ID, t.Name, t.WaiterName, t.Notes, ordersJSON, t.Total, t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update table: %w", err)
	}
	r.notify(t.AccessCode)
	return t, nil
}

// Delete remove a mesa por ID.
func (r *TableRepo) Delete(ctx context.Context, id string) error {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `DELETE FROM tables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete table: %w", err)
	}
	if t != nil {
		r.notify(t.AccessCode)
	}
	return nil
}

// SubscribeByAccessCode registra onChange no hub; a cada sinal a lista fresca
// é lida e entregue ao callback.
func (r *TableRepo) SubscribeByAccessCode(code string, onChange func(tables []*entity.Table)) (service.UnsubscribeFunc, error) {
	if r.hub == nil {
		return func() {}, nil
	}
	cancel := r.hub.Subscribe(code, func() {
		list, err := r.ListByAccessCode(context.Background(), code)
		if err != nil {
			return
		}
		onChange(list)
	})
	return service.UnsubscribeFunc(cancel), nil
}

func (r *TableRepo) notify(code string) {
	if r.hub != nil {
		r.hub.Notify(code)
	}
}

func marshalOrders(orders []entity.TableOrder) ([]byte, error) {
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{ID: o.ID, Name: o.Name, Price: o.Price, Quantity: o.Quantity})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("marshal orders: %w", err)
	}
	return b, nil
}

func scanTable(row pgx.Row) (*entity.Table, error) {
	var t entity.Table
	var ordersJSON []byte
	err := row.Scan(&t.ID, &t.AccessCode, &t.Name, &t.WaiterName, &t.Notes,
		&ordersJSON, &t.Total, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan table: %w", err)
	}
	if len(ordersJSON) > 0 {
		var rows []orderRow
		if err := json.Unmarshal(ordersJSON, &rows); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		for _, o := range rows {
			t.Orders = append(t.Orders, entity.TableOrder{ID: o.ID, Name: o.Name, Price: o.Price, Quantity: o.Quantity})
		}
	}
	return &t, nil
}
