package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauth "github.com/comanda-app/comanda-api/internal/application/auth"
	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	pkgjwt "github.com/comanda-app/comanda-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake do serviço de autenticação
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "segredo-de-teste-para-unit-tests"

var testJWT = appauth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "comanda-test"}

// fakeAuthService implementa service.AuthService registrando as invocações.
type fakeAuthService struct {
	sessionUser *entity.User
	profile     *entity.User
	profileErr  error

	loginErr    error
	registerErr error
	sendErr     error

	loginCalls    int
	registerCalls int
	sendCalls     []string
	reloadCalls   int
	roleCalls     []string
	roleUserIDs   []string
	resetEmails   []string
	callOrder     []string
}

func (f *fakeAuthService) Login(_ context.Context, email, password string) (*entity.User, error) {
	f.loginCalls++
	f.callOrder = append(f.callOrder, "login")
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.sessionUser, nil
}

func (f *fakeAuthService) Register(_ context.Context, name, email, password string) (*entity.User, error) {
	f.registerCalls++
	f.callOrder = append(f.callOrder, "register")
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &entity.User{ID: "novo-id", Email: email, Name: name, CreatedAt: time.Now()}, nil
}

func (f *fakeAuthService) Logout(context.Context) error {
	f.callOrder = append(f.callOrder, "logout")
	return nil
}

func (f *fakeAuthService) CurrentUser(context.Context) (*entity.User, error) {
	f.callOrder = append(f.callOrder, "current")
	return f.sessionUser, nil
}

func (f *fakeAuthService) ReloadUser(context.Context) error {
	f.reloadCalls++
	f.callOrder = append(f.callOrder, "reload")
	return nil
}

func (f *fakeAuthService) UserProfile(_ context.Context, userID string) (*entity.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuthService) SetUserOrganization(_ context.Context, userID, code string) error {
	return nil
}

func (f *fakeAuthService) SetUserRole(_ context.Context, userID, role string) error {
	f.roleUserIDs = append(f.roleUserIDs, userID)
	f.roleCalls = append(f.roleCalls, role)
	return nil
}

func (f *fakeAuthService) AddCodeToHistory(_ context.Context, userID, code string) error { return nil }

func (f *fakeAuthService) CodeHistory(context.Context, string) ([]entity.CodeHistoryEntry, error) {
	return nil, nil
}

func (f *fakeAuthService) ResetPassword(_ context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func (f *fakeAuthService) ConfirmPasswordReset(_ context.Context, token, newPassword string) error {
	return nil
}

func (f *fakeAuthService) SendVerificationEmail(_ context.Context, userID string) error {
	f.sendCalls = append(f.sendCalls, userID)
	f.callOrder = append(f.callOrder, "send")
	return f.sendErr
}

func (f *fakeAuthService) VerifyEmail(_ context.Context, token string) error { return nil }

func newUC(f *fakeAuthService) *appauth.AuthUseCase {
	return appauth.NewAuthUseCase(f, testJWT)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredenciaisVazias_NaoChamaServico(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	cases := []dto.LoginRequest{
		{},
		{Email: "a@b.com"},
		{Password: "123456"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	}
	assert.Zero(t, f.loginCalls, "nenhuma chamada ao serviço antes da validação local")
}

func TestLogin_Sucesso_EmiteTokenValido(t *testing.T) {
	f := &fakeAuthService{sessionUser: &entity.User{ID: "u1", Email: "a@b.com", Name: "Ana"}}
	uc := newUC(f)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "u1", out.User.ID)

	claims, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "token deve carregar jti para revogação")
}

func TestLogin_ErroDoServicoSobeIntacto(t *testing.T) {
	f := &fakeAuthService{loginErr: domain.ErrInvalidCredentials}
	uc := newUC(f)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.com", Password: "errada"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CamposFaltando(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "a@b.com", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
	assert.Zero(t, f.registerCalls)
}

func TestRegister_SenhaFraca(t *testing.T) {
	uc := newUC(&fakeAuthService{})
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "12345"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}

func TestRegister_Sucesso_EnviaVerificacaoAntesDoToken(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "123456"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, []string{"novo-id"}, f.sendCalls, "verificação enviada para o usuário recém-criado")
	assert.Equal(t, []string{"register", "send"}, f.callOrder)
}

func TestRegister_FalhaNoEnvioPropaga(t *testing.T) {
	sendErr := errors.New("smtp indisponível")
	f := &fakeAuthService{sendErr: sendErr}
	uc := newUC(f)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "a@b.com", Password: "123456"})
	assert.ErrorIs(t, err, sendErr, "o envio é aguardado; a falha sobe mesmo com a conta criada")
	assert.Equal(t, 1, f.registerCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Verificação de e-mail
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckEmailVerified_RecarregaAntesDeConsultar(t *testing.T) {
	f := &fakeAuthService{sessionUser: &entity.User{ID: "u1", EmailVerified: true}}
	uc := newUC(f)

	assert.True(t, uc.CheckEmailVerified(context.Background()))
	assert.Equal(t, 1, f.reloadCalls)
	assert.Equal(t, []string{"reload", "current"}, f.callOrder, "reload precede a leitura da sessão")
}

func TestCheckEmailVerified_SemSessaoRetornaFalse(t *testing.T) {
	uc := newUC(&fakeAuthService{})
	assert.False(t, uc.CheckEmailVerified(context.Background()))
}

func TestCheckEmailVerified_NaoVerificado(t *testing.T) {
	uc := newUC(&fakeAuthService{sessionUser: &entity.User{ID: "u1"}})
	assert.False(t, uc.CheckEmailVerified(context.Background()))
}

func TestResendVerification_ExigeSessao(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	err := uc.ResendVerification(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, f.sendCalls)
}

func TestVerifyEmail_TokenVazio(t *testing.T) {
	uc := newUC(&fakeAuthService{})
	assert.ErrorIs(t, uc.VerifyEmail(context.Background(), ""), domain.ErrInvalidToken)
}

// ──────────────────────────────────────────────────────────────────────────────
// SetRole
// ──────────────────────────────────────────────────────────────────────────────

func TestSetRole_SemSessao(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	err := uc.SetRole(context.Background(), entity.RoleOrganization)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.Empty(t, f.roleCalls)
}

func TestSetRole_RoleInvalido(t *testing.T) {
	f := &fakeAuthService{sessionUser: &entity.User{ID: "u1"}}
	uc := newUC(f)

	err := uc.SetRole(context.Background(), "admin")
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.Empty(t, f.roleCalls)
}

func TestSetRole_SoAlteraOProprioUsuario(t *testing.T) {
	f := &fakeAuthService{sessionUser: &entity.User{ID: "u1"}}
	uc := newUC(f)

	require.NoError(t, uc.SetRole(context.Background(), entity.RoleCollaborator))
	assert.Equal(t, []string{"u1"}, f.roleUserIDs, "o alvo é sempre o usuário da sessão")
	assert.Equal(t, []string{entity.RoleCollaborator}, f.roleCalls)
}

// ──────────────────────────────────────────────────────────────────────────────
// CurrentProfile
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentProfile_SemSessaoRetornaNilSemErro(t *testing.T) {
	uc := newUC(&fakeAuthService{})
	out, err := uc.CurrentProfile(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestCurrentProfile_PerfilTemPrioridade(t *testing.T) {
	f := &fakeAuthService{
		sessionUser: &entity.User{ID: "u1", Email: "a@b.com"},
		profile:     &entity.User{ID: "u1", Email: "a@b.com", Name: "Ana", OrganizationID: "123456789"},
	}
	uc := newUC(f)

	out, err := uc.CurrentProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "123456789", out.OrganizationID)
}

func TestCurrentProfile_FallbackParaUsuarioDaSessao(t *testing.T) {
	f := &fakeAuthService{sessionUser: &entity.User{ID: "u1", Email: "a@b.com"}}
	uc := newUC(f)

	out, err := uc.CurrentProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "u1", out.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperação de senha
// ──────────────────────────────────────────────────────────────────────────────

func TestRecoverPassword_EmailInvalido(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	for _, email := range []string{"", "semarroba", "a@b", "a @b.com"} {
		err := uc.RecoverPassword(context.Background(), dto.RecoverPasswordRequest{Email: email})
		assert.ErrorIs(t, err, domain.ErrInvalidEmail, email)
	}
	assert.Empty(t, f.resetEmails)
}

func TestRecoverPassword_EmailValidoDelega(t *testing.T) {
	f := &fakeAuthService{}
	uc := newUC(f)

	require.NoError(t, uc.RecoverPassword(context.Background(), dto.RecoverPasswordRequest{Email: "a@b.com"}))
	assert.Equal(t, []string{"a@b.com"}, f.resetEmails)
}

func TestConfirmPasswordReset_Validacoes(t *testing.T) {
	uc := newUC(&fakeAuthService{})

	err := uc.ConfirmPasswordReset(context.Background(), dto.ConfirmResetRequest{Token: "", NewPassword: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	err = uc.ConfirmPasswordReset(context.Background(), dto.ConfirmResetRequest{Token: "tok", NewPassword: "123"})
	assert.ErrorIs(t, err, domain.ErrWeakPassword)
}
