package postgres

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

var _ service.AccessCodeService = (*AccessCodeRepo)(nil)

// AccessCodeRepo implementação do porto AccessCodeService sobre PostgreSQL.
type AccessCodeRepo struct {
	q Querier
}

// NewAccessCodeRepository constrói o adaptador.
func NewAccessCodeRepository(q Querier) *AccessCodeRepo {
	return &AccessCodeRepo{q: q}
}

var maxCode = big.NewInt(1_000_000_000)

// GenerateUniqueCode sorteia códigos de 9 dígitos até achar um livre.
// A unicidade é garantida aqui; quem chama não faz retry.
func (r *AccessCodeRepo) GenerateUniqueCode(ctx context.Context) (string, error) {
	for {
		n, err := rand.Int(rand.Reader, maxCode)
		if err != nil {
			return "", fmt.Errorf("gerar código: %w", err)
		}
		code := fmt.Sprintf("%09d", n)
		var exists bool
		err = r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM organizations WHERE access_code = $1)`, code).Scan(&exists)
		if err != nil {
			return "", fmt.Errorf("checar colisão: %w", err)
		}
		if !exists {
			return code, nil
		}
	}
}

// CreateOrganizationWithCode persiste a organização nova com contador zerado.
func (r *AccessCodeRepo) CreateOrganizationWithCode(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (id, access_code, name, owner_user_id, owner_email, members_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.AccessCode, org.Name, org.OwnerUserID, org.OwnerEmail,
		org.MembersCount, org.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetOrganizationByCode busca a organização. Retorna (nil, nil) se não existe.
func (r *AccessCodeRepo) GetOrganizationByCode(ctx context.Context, code string) (*entity.Organization, error) {
	query := `
		SELECT id, access_code, name, owner_user_id, owner_email, members_count, created_at
		FROM organizations WHERE access_code = $1`
	var o entity.Organization
	err := r.q.QueryRow(ctx, query, code).Scan(
		&o.ID, &o.AccessCode, &o.Name, &o.OwnerUserID, &o.OwnerEmail,
		&o.MembersCount, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}

// DeleteOrganizationByCode remove a organização pelo código.
func (r *AccessCodeRepo) DeleteOrganizationByCode(ctx context.Context, code string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM organizations WHERE access_code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	return nil
}

// UpdateMembersCount soma delta ao contador de membros.
func (r *AccessCodeRepo) UpdateMembersCount(ctx context.Context, code string, delta int) error {
	_, err := r.q.Exec(ctx,
		`UPDATE organizations SET members_count = members_count + $2 WHERE access_code = $1`,
		code, delta)
	if err != nil {
		return fmt.Errorf("update members count: %w", err)
	}
	return nil
}
