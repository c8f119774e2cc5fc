package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

// UserRepo persistência de usuários e do histórico de códigos.
// Não implementa o porto AuthService sozinho: é composto pelo serviço de
// autenticação em infrastructure/auth.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, role, organization_id, email_verified, created_at, updated_at`

// Create persiste um novo usuário.
func (r *UserRepo) Create(ctx context.Context, u *entity.User, passwordHash string) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Email, passwordHash, u.Name, u.Role, u.OrganizationID,
		u.EmailVerified, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID. Retorna (nil, nil) se não existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtém um usuário por e-mail. Retorna (nil, nil) se não existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// PasswordHash lê o hash bcrypt do usuário (mantido fora da entidade).
func (r *UserRepo) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := r.q.QueryRow(ctx, `SELECT password_hash FROM users WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("get password hash: %w", err)
	}
	return hash, nil
}

// SetPasswordHash troca o hash de senha.
func (r *UserRepo) SetPasswordHash(ctx context.Context, id, hash string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, id, hash)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return nil
}

// SetOrganization vincula o usuário ao código de acesso.
func (r *UserRepo) SetOrganization(ctx context.Context, id, code string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET organization_id = $2, updated_at = now() WHERE id = $1`, id, code)
	if err != nil {
		return fmt.Errorf("set organization: %w", err)
	}
	return nil
}

// SetRole define o perfil do usuário.
func (r *UserRepo) SetRole(ctx context.Context, id, role string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	return nil
}

// SetEmailVerified marca o e-mail como verificado.
func (r *UserRepo) SetEmailVerified(ctx context.Context, id string, verified bool) error {
	_, err := r.q.Exec(ctx,
		`UPDATE users SET email_verified = $2, updated_at = now() WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("set email verified: %w", err)
	}
	return nil
}

// AddCodeToHistory acrescenta uma entrada ao histórico de códigos do usuário.
func (r *UserRepo) AddCodeToHistory(ctx context.Context, userID, code string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_code_history (user_id, code, used_at) VALUES ($1, $2, $3)`,
		userID, code, time.Now())
	if err != nil {
		return fmt.Errorf("insert code history: %w", err)
	}
	return nil
}

// CodeHistory lista o histórico de códigos do usuário, mais recente primeiro.
func (r *UserRepo) CodeHistory(ctx context.Context, userID string) ([]entity.CodeHistoryEntry, error) {
	rows, err := r.q.Query(ctx,
		`SELECT code, used_at FROM user_code_history WHERE user_id = $1 ORDER BY used_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list code history: %w", err)
	}
	defer rows.Close()
	var list []entity.CodeHistoryEntry
	for rows.Next() {
		var e entity.CodeHistoryEntry
		if err := rows.Scan(&e.Code, &e.At); err != nil {
			return nil, fmt.Errorf("scan code history: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	var hash string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &hash, &u.Name, &u.Role, &u.OrganizationID,
		&u.EmailVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
