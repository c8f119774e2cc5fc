package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

const (
	userKeyPrefix    = "user:"
	revokedKeyPrefix = "revoked:"
	verifyKeyPrefix  = "verify:"
	resetKeyPrefix   = "reset:"

	userSnapshotTTL = 15 * time.Minute
	verifyTokenTTL  = 24 * time.Hour
	resetTokenTTL   = time.Hour
)

// SessionStore estado de sessão no Redis: snapshot do usuário (cache que o
// ReloadUser descarta), revogação de tokens no logout e tokens de
// verificação/recuperação enviados por e-mail.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore constrói o store.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// GetUser lê o snapshot em cache. Retorna (nil, nil) em cache miss.
func (s *SessionStore) GetUser(ctx context.Context, id string) (*entity.User, error) {
	raw, err := s.client.Get(ctx, userKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user snapshot: %w", err)
	}
	var u entity.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("unmarshal user snapshot: %w", err)
	}
	return &u, nil
}

// PutUser grava o snapshot com TTL curto.
func (s *SessionStore) PutUser(ctx context.Context, u *entity.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}
	return s.client.Set(ctx, userKeyPrefix+u.ID, raw, userSnapshotTTL).Err()
}

// InvalidateUser descarta o snapshot (usado por ReloadUser e por mutações de
// perfil/vínculo).
func (s *SessionStore) InvalidateUser(ctx context.Context, id string) error {
	return s.client.Del(ctx, userKeyPrefix+id).Err()
}

// Revoke marca o jti como revogado até o token expirar sozinho.
func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token já expirado, nada a revogar
	}
	return s.client.Set(ctx, revokedKeyPrefix+jti, 1, ttl).Err()
}

// IsRevoked informa se o jti foi revogado por logout.
func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked: %w", err)
	}
	return n > 0, nil
}

// PutVerifyToken guarda o token de verificação de e-mail.
func (s *SessionStore) PutVerifyToken(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, verifyKeyPrefix+token, userID, verifyTokenTTL).Err()
}

// TakeVerifyToken consome o token (uso único). Retorna "" se inexistente.
func (s *SessionStore) TakeVerifyToken(ctx context.Context, token string) (string, error) {
	return s.take(ctx, verifyKeyPrefix+token)
}

// PutResetToken guarda o token de recuperação de senha.
func (s *SessionStore) PutResetToken(ctx context.Context, token, userID string) error {
	return s.client.Set(ctx, resetKeyPrefix+token, userID, resetTokenTTL).Err()
}

// TakeResetToken consome o token (uso único). Retorna "" se inexistente.
func (s *SessionStore) TakeResetToken(ctx context.Context, token string) (string, error) {
	return s.take(ctx, resetKeyPrefix+token)
}

func (s *SessionStore) take(ctx context.Context, key string) (string, error) {
	val, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("take token: %w", err)
	}
	return val, nil
}
