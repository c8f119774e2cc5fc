// Package auth implementa o porto AuthService compondo persistência,
// cache de sessão no Redis, envio de e-mails e tokens JWT.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
	"github.com/comanda-app/comanda-api/internal/infrastructure/postgres"
	infraredis "github.com/comanda-app/comanda-api/internal/infrastructure/redis"
	"github.com/comanda-app/comanda-api/pkg/jwt"
	"github.com/comanda-app/comanda-api/pkg/logger"
)

var _ service.AuthService = (*Service)(nil)

// Sender porto de envio dos e-mails transacionais.
type Sender interface {
	SendVerification(to, token string) error
	SendPasswordReset(to, token string) error
}

// Service implementação do AuthService.
type Service struct {
	users     *postgres.UserRepo
	sessions  *infraredis.SessionStore
	mailer    Sender
	log       *logger.Logger
	jwtSecret string
}

// NewService constrói o serviço de autenticação.
func NewService(users *postgres.UserRepo, sessions *infraredis.SessionStore, mailer Sender, log *logger.Logger, jwtSecret string) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		mailer:    mailer,
		log:       log,
		jwtSecret: jwtSecret,
	}
}

// Login valida as credenciais e retorna o usuário autenticado.
func (s *Service) Login(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrInvalidCredentials
	}
	hash, err := s.users.PasswordHash(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// Register cria a conta e retorna o novo usuário, ainda sem perfil nem
// organização definidos.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	u := &entity.User{
		ID:        uuid.New().String(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u, string(hash)); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout revoga o token da sessão corrente até sua expiração natural.
func (s *Service) Logout(ctx context.Context) error {
	claims := s.sessionClaims(ctx)
	if claims == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	return s.sessions.InvalidateUser(ctx, claims.UserID)
}

// CurrentUser resolve a sessão corrente. Retorna (nil, nil) quando não há
// token, o token é inválido ou foi revogado por logout.
func (s *Service) CurrentUser(ctx context.Context) (*entity.User, error) {
	claims := s.sessionClaims(ctx)
	if claims == nil {
		return nil, nil
	}
	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, nil
	}
	if u, err := s.sessions.GetUser(ctx, claims.UserID); err == nil && u != nil {
		return u, nil
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if err := s.sessions.PutUser(ctx, u); err != nil {
		s.log.Warn().Err(err).Str("user_id", u.ID).Msg("falha ao cachear snapshot do usuário")
	}
	return u, nil
}

// ReloadUser descarta o snapshot da sessão corrente.
func (s *Service) ReloadUser(ctx context.Context) error {
	claims := s.sessionClaims(ctx)
	if claims == nil {
		return nil
	}
	return s.sessions.InvalidateUser(ctx, claims.UserID)
}

// UserProfile lê o perfil direto da persistência. (nil, nil) se não existe.
func (s *Service) UserProfile(ctx context.Context, userID string) (*entity.User, error) {
	return s.users.GetByID(ctx, userID)
}

// SetUserOrganization vincula o usuário ao código e invalida o snapshot.
func (s *Service) SetUserOrganization(ctx context.Context, userID, code string) error {
	if err := s.users.SetOrganization(ctx, userID, code); err != nil {
		return err
	}
	return s.sessions.InvalidateUser(ctx, userID)
}

// SetUserRole define o perfil do usuário e invalida o snapshot.
func (s *Service) SetUserRole(ctx context.Context, userID, role string) error {
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return err
	}
	return s.sessions.InvalidateUser(ctx, userID)
}

// AddCodeToHistory registra o uso do código no histórico do usuário.
func (s *Service) AddCodeToHistory(ctx context.Context, userID, code string) error {
	return s.users.AddCodeToHistory(ctx, userID, code)
}

// CodeHistory lista o histórico de códigos do usuário.
func (s *Service) CodeHistory(ctx context.Context, userID string) ([]entity.CodeHistoryEntry, error) {
	return s.users.CodeHistory(ctx, userID)
}

// ResetPassword dispara o e-mail de recuperação. Quando o e-mail não tem
// conta, retorna sem erro para não revelar cadastro.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}
	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.sessions.PutResetToken(ctx, token, u.ID); err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(u.Email, token)
}

// ConfirmPasswordReset consome o token e troca a senha.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	userID, err := s.sessions.TakeResetToken(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrInvalidToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.SetPasswordHash(ctx, userID, string(hash))
}

// SendVerificationEmail gera um token de uso único e envia o link.
func (s *Service) SendVerificationEmail(ctx context.Context, userID string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	token, err := newOpaqueToken()
	if err != nil {
		return err
	}
	if err := s.sessions.PutVerifyToken(ctx, token, u.ID); err != nil {
		return err
	}
	return s.mailer.SendVerification(u.Email, token)
}

// VerifyEmail consome o token e marca o e-mail como verificado.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.sessions.TakeVerifyToken(ctx, token)
	if err != nil {
		return err
	}
	if userID == "" {
		return domain.ErrInvalidToken
	}
	if err := s.users.SetEmailVerified(ctx, userID, true); err != nil {
		return err
	}
	return s.sessions.InvalidateUser(ctx, userID)
}

// sessionClaims extrai e valida o token do contexto. nil quando não há
// sessão utilizável.
func (s *Service) sessionClaims(ctx context.Context) *jwt.Claims {
	token := TokenFromContext(ctx)
	if token == "" {
		return nil
	}
	claims, err := jwt.Parse(s.jwtSecret, token)
	if err != nil {
		return nil
	}
	return claims
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("gerar token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
