package dto

import "time"

// LoginRequest entrada do login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest entrada do cadastro.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetRoleRequest entrada para definir o perfil do usuário da sessão.
type SetRoleRequest struct {
	Role string `json:"role"` // organization | collaborator
}

// RecoverPasswordRequest entrada da recuperação de senha.
type RecoverPasswordRequest struct {
	Email string `json:"email"`
}

// ConfirmResetRequest entrada da troca de senha via token de recuperação.
type ConfirmResetRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// UserResponse saída de um usuário.
type UserResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	Role           string    `json:"role,omitempty"`
	OrganizationID string    `json:"organization_id,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionResponse saída de login/cadastro: token Bearer + usuário.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// EmailVerifiedResponse saída da consulta de verificação de e-mail.
type EmailVerifiedResponse struct {
	Verified bool `json:"verified"`
}

// RouteResponse saída da decisão de navegação da sessão.
type RouteResponse struct {
	Route string `json:"route"`
}
