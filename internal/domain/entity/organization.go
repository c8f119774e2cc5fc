package entity

import "time"

// Organization representa o tenant: um restaurante identificado pelo código
// de acesso de 9 dígitos. ID é igual ao AccessCode por decisão de modelagem:
// o código é o único identificador externo do tenant.
type Organization struct {
	ID           string
	AccessCode   string
	Name         string
	OwnerUserID  string // vazio quando criada por geração anônima
	OwnerEmail   string
	MembersCount int
	CreatedAt    time.Time
}
