package entity

import "time"

// Perfis válidos para User.
const (
	RoleOrganization = "organization"
	RoleCollaborator = "collaborator"
)

// ValidRole informa se o perfil é um dos aceitos.
func ValidRole(role string) bool {
	return role == RoleOrganization || role == RoleCollaborator
}

// User representa um usuário autenticável do sistema.
// OrganizationID guarda o código de acesso ao qual o usuário está vinculado.
// O vínculo é fraco: o código referenciado pode não existir mais.
type User struct {
	ID             string
	Email          string
	Name           string
	Role           string // "", organization ou collaborator
	OrganizationID string // código de acesso vinculado ("" = sem vínculo)
	EmailVerified  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CodeHistoryEntry registra um código de acesso usado pelo usuário e quando.
type CodeHistoryEntry struct {
	Code string
	At   time.Time
}
