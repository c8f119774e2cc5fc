package service

import (
	"context"

	"github.com/comanda-app/comanda-api/internal/domain/entity"
)

// AccessCodeService define o porto de códigos de acesso e organizações (DIP).
type AccessCodeService interface {
	// GenerateUniqueCode devolve um código de 9 dígitos sem colisão com
	// organizações existentes. A checagem de colisão é responsabilidade do
	// serviço; o chamador não tenta de novo.
	GenerateUniqueCode(ctx context.Context) (string, error)
	CreateOrganizationWithCode(ctx context.Context, org *entity.Organization) error
	// GetOrganizationByCode retorna (nil, nil) quando o código não existe.
	GetOrganizationByCode(ctx context.Context, code string) (*entity.Organization, error)
	DeleteOrganizationByCode(ctx context.Context, code string) error
	// UpdateMembersCount soma delta ao contador de membros da organização.
	UpdateMembersCount(ctx context.Context, code string, delta int) error
}
