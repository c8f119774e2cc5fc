package service

import (
	"context"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

// AuthService define o porto de autenticação e sessão (DIP).
// A implementação vive em infrastructure. A identidade da sessão corrente
// viaja no context: o middleware HTTP injeta o token e a implementação o
// resolve; os casos de uso nunca manipulam tokens diretamente.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*entity.User, error)
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Logout(ctx context.Context) error

	// CurrentUser retorna (nil, nil) quando não há sessão válida.
	CurrentUser(ctx context.Context) (*entity.User, error)
	// ReloadUser descarta o snapshot em cache da sessão corrente, forçando
	// leitura fresca no próximo CurrentUser.
	ReloadUser(ctx context.Context) error
	// UserProfile lê o registro de perfil direto da persistência.
	// Retorna (nil, nil) quando o perfil não existe.
	UserProfile(ctx context.Context, userID string) (*entity.User, error)

	SetUserOrganization(ctx context.Context, userID, code string) error
	SetUserRole(ctx context.Context, userID, role string) error
	AddCodeToHistory(ctx context.Context, userID, code string) error
	CodeHistory(ctx context.Context, userID string) ([]entity.CodeHistoryEntry, error)

	ResetPassword(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	SendVerificationEmail(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, token string) error
}
