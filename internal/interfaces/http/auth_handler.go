package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/auth"
	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain/navigation"
)

// AuthHandler rotas de cadastro, sessão e verificação de e-mail.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register cria a conta e devolve o token de sessão.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login autentica e devolve o token de sessão.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Logout revoga o token da sessão corrente.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me devolve o perfil da sessão corrente; 401 sem sessão.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.uc.CurrentProfile(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	if profile == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sessão ausente ou inválida"})
	}
	return c.JSON(profile)
}

// SetRole define o perfil (organization/collaborator) do usuário da sessão.
func (h *AuthHandler) SetRole(c *fiber.Ctx) error {
	var in dto.SetRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetRole(c.UserContext(), in.Role); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecoverPassword dispara o e-mail de recuperação de senha.
func (h *AuthHandler) RecoverPassword(c *fiber.Ctx) error {
	var in dto.RecoverPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.RecoverPassword(c.UserContext(), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// ConfirmPasswordReset troca a senha usando o token recebido por e-mail.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.ConfirmResetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ConfirmPasswordReset(c.UserContext(), in); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ResendVerification reenvia o e-mail de verificação para a sessão corrente.
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	if err := h.uc.ResendVerification(c.UserContext()); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// VerificationStatus consulta (com recarga de sessão) se o e-mail está
// verificado. Sempre 200; sem sessão o resultado é false.
func (h *AuthHandler) VerificationStatus(c *fiber.Ctx) error {
	verified := h.uc.CheckEmailVerified(c.UserContext())
	return c.JSON(dto.EmailVerifiedResponse{Verified: verified})
}

// VerifyEmail consome o token do link enviado por e-mail.
func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if err := h.uc.VerifyEmail(c.UserContext(), token); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.EmailVerifiedResponse{Verified: true})
}

// SessionRoute decide o destino de navegação da sessão corrente. A decisão é
// derivada do zero a cada chamada, nunca de estado guardado.
func (h *AuthHandler) SessionRoute(c *fiber.Ctx) error {
	profile, err := h.uc.CurrentProfile(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	code := ""
	if profile != nil {
		code = profile.OrganizationID
	}
	route := navigation.NextRoute(profile != nil, code)
	return c.JSON(dto.RouteResponse{Route: string(route)})
}
