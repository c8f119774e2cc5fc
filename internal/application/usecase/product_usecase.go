package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/accesscode"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

// ProductUseCase CRUD do cardápio com escopo por código de acesso.
type ProductUseCase struct {
	products service.ProductService
	auth     service.AuthService
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(products service.ProductService, auth service.AuthService) *ProductUseCase {
	return &ProductUseCase{products: products, auth: auth}
}

// Create cria um item do cardápio. A criação exige que o perfil do usuário
// esteja vinculado exatamente ao código de destino.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !accesscode.IsValid(in.AccessCode) {
		return nil, domain.ErrInvalidCodeFormat
	}
	profile, err := uc.requireProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.OrganizationID != in.AccessCode {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrMissingName
	}
	if !in.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidCategory
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		AccessCode:  in.AccessCode,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		CreatedAt:   time.Now(),
	}
	created, err := uc.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	return toProductResponse(created), nil
}

// Update atualização parcial de um item. A autorização exige apenas vínculo
// com alguma organização, não igualdade com o código do produto —
// comportamento herdado do produto original, preservado de propósito
// (ver DESIGN.md).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	profile, err := uc.requireProfile(ctx)
	if err != nil {
		return nil, err
	}
	if profile.OrganizationID == "" {
		return nil, domain.ErrUnauthorized
	}
	changes := service.ProductChanges{
		Description: in.Description,
		ImageURL:    in.ImageURL,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrMissingName
		}
		changes.Name = &name
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return nil, domain.ErrInvalidPrice
		}
		changes.Price = in.Price
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			return nil, domain.ErrInvalidCategory
		}
		changes.Category = in.Category
	}
	updated, err := uc.products.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Delete remove um item. Mesma regra de autorização do Update: basta vínculo
// com alguma organização.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	profile, err := uc.requireProfile(ctx)
	if err != nil {
		return err
	}
	if profile.OrganizationID == "" {
		return domain.ErrUnauthorized
	}
	return uc.products.Delete(ctx, id)
}

// ListByCode listagem pública dentro do tenant: sem autenticação, só o
// formato do código é exigido. Filtros são repassados ao serviço, que faz a
// filtragem de fato.
func (uc *ProductUseCase) ListByCode(ctx context.Context, code, query, category string) ([]dto.ProductResponse, error) {
	if !accesscode.IsValid(code) {
		return nil, domain.ErrInvalidCodeFormat
	}
	list, err := uc.products.ListByAccessCode(ctx, code, service.ProductFilter{Query: query, Category: category})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// requireProfile carrega o perfil do usuário da sessão (fallback: o usuário
// leve da sessão) ou falha com ErrNotAuthenticated.
func (uc *ProductUseCase) requireProfile(ctx context.Context) (*entity.User, error) {
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotAuthenticated
	}
	profile, err := uc.auth.UserProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = user
	}
	return profile, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		AccessCode:  p.AccessCode,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
