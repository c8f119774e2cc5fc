package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
	"github.com/comanda-app/comanda-api/pkg/textutil"
)

var _ service.ProductService = (*ProductRepo)(nil)

// ProductRepo implementação do porto ProductService sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, access_code, name, description, price, category, image_url, created_at, updated_at`

// ListByAccessCode lista o cardápio do tenant. Categoria filtra no SQL; a
// busca livre compara sem caixa nem acento (nomes do cardápio vêm com
// acentuação irregular), então roda aqui depois da leitura.
func (r *ProductRepo) ListByAccessCode(ctx context.Context, code string, filter service.ProductFilter) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE access_code = $1`
	args := []any{code}
	if filter.Category != "" {
		query += ` AND category = $2`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.AccessCode, &p.Name, &p.Description, &p.Price,
			&p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if filter.Query != "" &&
			!textutil.ContainsFold(p.Name, filter.Query) &&
			!textutil.ContainsFold(p.Description, filter.Query) {
			continue
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Create persiste um novo item do cardápio.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) (*entity.Product, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.AccessCode, p.Name, p.Description, p.Price, p.Category,
		p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// Update aplica as mudanças parciais sobre o registro atual.
// AccessCode nunca muda.
func (r *ProductRepo) Update(ctx context.Context, id string, changes service.ProductChanges) (*entity.Product, error) {
	p, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if changes.Name != nil {
		p.Name = *changes.Name
	}
	if changes.Description != nil {
		p.Description = *changes.Description
	}
	if changes.Price != nil {
		p.Price = *changes.Price
	}
	if changes.Category != nil {
		p.Category = *changes.Category
	}
	if changes.ImageURL != nil {
		p.ImageURL = *changes.ImageURL
	}
	p.UpdatedAt = time.Now()

	query := `
		UPDATE products SET name = $2, description = $3, price = $4, category = $5, image_url = $6, updated_at = $7
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Category, p.ImageURL, p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete remove um item por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) getByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.AccessCode, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}
