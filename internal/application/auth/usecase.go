package auth

import (
	"context"
	"regexp"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
	"github.com/comanda-app/comanda-api/pkg/jwt"
)

// JWTConfig configuração para emissão de tokens de sessão.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação e sessão. Toda validação local
// acontece antes de qualquer chamada ao serviço; erros do serviço sobem
// intactos porque a mensagem original é exibida ao usuário.
type AuthUseCase struct {
	svc    service.AuthService
	jwtCfg JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(svc service.AuthService, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{svc: svc, jwtCfg: jwtCfg}
}

// emailRe forma mínima local@dominio.tld; o mesmo predicado da tela de
// "esqueci minha senha".
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Login autentica por e-mail e senha e emite o token de sessão.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.SessionResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingCredentials
	}
	user, err := uc.svc.Login(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	return uc.toSessionResponse(user)
}

// Register cria a conta, dispara o e-mail de verificação e emite o token.
// O envio do e-mail é aguardado: se falhar, o erro sobe mesmo com a conta já
// criada — o chamador pode reenviar via ResendVerification.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.SessionResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrMissingFields
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	user, err := uc.svc.Register(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	if err := uc.svc.SendVerificationEmail(ctx, user.ID); err != nil {
		return nil, err
	}
	return uc.toSessionResponse(user)
}

// Logout encerra a sessão corrente.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.svc.Logout(ctx)
}

// ResendVerification reenvia o e-mail de verificação para o usuário da sessão.
func (uc *AuthUseCase) ResendVerification(ctx context.Context) error {
	user, err := uc.svc.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	return uc.svc.SendVerificationEmail(ctx, user.ID)
}

// CheckEmailVerified recarrega a sessão antes de consultar: o status de
// verificação pode estar defasado no cache. Nunca retorna erro; sem sessão
// ou sem verificação o resultado é simplesmente false.
func (uc *AuthUseCase) CheckEmailVerified(ctx context.Context) bool {
	if err := uc.svc.ReloadUser(ctx); err != nil {
		return false
	}
	user, err := uc.svc.CurrentUser(ctx)
	if err != nil || user == nil {
		return false
	}
	return user.EmailVerified
}

// VerifyEmail consome o token recebido por e-mail e marca o endereço como
// verificado.
func (uc *AuthUseCase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	return uc.svc.VerifyEmail(ctx, token)
}

// SetRole define o perfil do usuário da sessão. O perfil nunca é alterável
// para um usuário arbitrário, só para o próprio chamador.
func (uc *AuthUseCase) SetRole(ctx context.Context, role string) error {
	user, err := uc.svc.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	if !entity.ValidRole(role) {
		return domain.ErrInvalidRole
	}
	return uc.svc.SetUserRole(ctx, user.ID, role)
}

// CurrentProfile retorna nil sem erro quando não há sessão. O registro de
// perfil tem prioridade; o usuário leve da sessão é o fallback quando o
// perfil ainda não existe.
func (uc *AuthUseCase) CurrentProfile(ctx context.Context) (*dto.UserResponse, error) {
	user, err := uc.svc.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	profile, err := uc.svc.UserProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = user
	}
	return toUserResponse(profile), nil
}

// RecoverPassword dispara o fluxo de recuperação de senha.
func (uc *AuthUseCase) RecoverPassword(ctx context.Context, in dto.RecoverPasswordRequest) error {
	if !emailRe.MatchString(in.Email) {
		return domain.ErrInvalidEmail
	}
	return uc.svc.ResetPassword(ctx, in.Email)
}

// ConfirmPasswordReset troca a senha usando o token recebido por e-mail.
func (uc *AuthUseCase) ConfirmPasswordReset(ctx context.Context, in dto.ConfirmResetRequest) error {
	if in.Token == "" {
		return domain.ErrInvalidToken
	}
	if len(in.NewPassword) < 6 {
		return domain.ErrWeakPassword
	}
	return uc.svc.ConfirmPasswordReset(ctx, in.Token, in.NewPassword)
}

func (uc *AuthUseCase) toSessionResponse(user *entity.User) (*dto.SessionResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SessionResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		EmailVerified:  u.EmailVerified,
		CreatedAt:      u.CreatedAt,
	}
}
