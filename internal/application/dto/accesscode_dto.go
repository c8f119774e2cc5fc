package dto

import "time"

// GenerateCodeRequest entrada da geração de organização (nome opcional).
type GenerateCodeRequest struct {
	Name string `json:"name"`
}

// ValidateCodeRequest entrada da validação de código de acesso.
// O código pode vir com separadores ("123-456-789"); é normalizado antes.
type ValidateCodeRequest struct {
	Code string `json:"code"`
}

// OrganizationResponse saída de uma organização.
type OrganizationResponse struct {
	ID           string    `json:"id"`
	AccessCode   string    `json:"access_code"`
	Name         string    `json:"name,omitempty"`
	OwnerUserID  string    `json:"owner_user_id,omitempty"`
	OwnerEmail   string    `json:"owner_email,omitempty"`
	MembersCount int       `json:"members_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CodeHistoryEntryResponse um código usado pelo usuário e quando.
type CodeHistoryEntryResponse struct {
	Code string    `json:"code"`
	At   time.Time `json:"at"`
}
