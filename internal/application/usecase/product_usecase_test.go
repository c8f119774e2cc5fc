package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes compartilhados do pacote
// ──────────────────────────────────────────────────────────────────────────────

// sessionAuth implementa service.AuthService com uma sessão fixa opcional.
type sessionAuth struct {
	sessionUser *entity.User
	profile     *entity.User
}

func (f *sessionAuth) Login(context.Context, string, string) (*entity.User, error) { return nil, nil }
func (f *sessionAuth) Register(context.Context, string, string, string) (*entity.User, error) {
	return nil, nil
}
func (f *sessionAuth) Logout(context.Context) error { return nil }

func (f *sessionAuth) CurrentUser(context.Context) (*entity.User, error) { return f.sessionUser, nil }
func (f *sessionAuth) ReloadUser(context.Context) error                  { return nil }
func (f *sessionAuth) UserProfile(context.Context, string) (*entity.User, error) {
	return f.profile, nil
}

func (f *sessionAuth) SetUserOrganization(context.Context, string, string) error { return nil }
func (f *sessionAuth) SetUserRole(context.Context, string, string) error         { return nil }
func (f *sessionAuth) AddCodeToHistory(context.Context, string, string) error    { return nil }
func (f *sessionAuth) CodeHistory(context.Context, string) ([]entity.CodeHistoryEntry, error) {
	return nil, nil
}
func (f *sessionAuth) ResetPassword(context.Context, string) error                { return nil }
func (f *sessionAuth) ConfirmPasswordReset(context.Context, string, string) error { return nil }
func (f *sessionAuth) SendVerificationEmail(context.Context, string) error        { return nil }
func (f *sessionAuth) VerifyEmail(context.Context, string) error                  { return nil }

// fakeProducts implementa service.ProductService registrando as invocações.
type fakeProducts struct {
	created     []*entity.Product
	updateCalls int
	deleteCalls []string
	listFilter  service.ProductFilter
	listed      []*entity.Product
}

func (f *fakeProducts) ListByAccessCode(_ context.Context, code string, filter service.ProductFilter) ([]*entity.Product, error) {
	f.listFilter = filter
	return f.listed, nil
}

func (f *fakeProducts) Create(_ context.Context, p *entity.Product) (*entity.Product, error) {
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, changes service.ProductChanges) (*entity.Product, error) {
	f.updateCalls++
	return &entity.Product{ID: id}, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	f.deleteCalls = append(f.deleteCalls, id)
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func collaborator(orgCode string) *sessionAuth {
	u := &entity.User{ID: "u1", Email: "c@b.com", Role: entity.RoleCollaborator, OrganizationID: orgCode}
	return &sessionAuth{sessionUser: u, profile: u}
}

func validCreate() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		AccessCode: "123456789",
		Name:       "Pizza Margherita",
		Price:      dec("45.90"),
		Category:   entity.CategoryPizzas,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_Sucesso(t *testing.T) {
	products := &fakeProducts{}
	uc := usecase.NewProductUseCase(products, collaborator("123456789"))

	out, err := uc.Create(context.Background(), validCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "123456789", out.AccessCode)
	require.Len(t, products.created, 1)
}

func TestProductCreate_CodigoInvalidoPrimeiro(t *testing.T) {
	products := &fakeProducts{}
	uc := usecase.NewProductUseCase(products, &sessionAuth{})

	in := validCreate()
	in.AccessCode = "123"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat, "formato do código é checado antes da sessão")
	assert.Empty(t, products.created)
}

func TestProductCreate_SemSessao(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProducts{}, &sessionAuth{})
	_, err := uc.Create(context.Background(), validCreate())
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestProductCreate_ExigeVinculoExato(t *testing.T) {
	// Criar exige que o vínculo do perfil seja exatamente o código de destino.
	uc := usecase.NewProductUseCase(&fakeProducts{}, collaborator("987654321"))
	_, err := uc.Create(context.Background(), validCreate())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProductCreate_NomeObrigatorio(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProducts{}, collaborator("123456789"))

	in := validCreate()
	in.Name = "   "
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrMissingName)
}

func TestProductCreate_PrecoInvalido(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProducts{}, collaborator("123456789"))

	for _, price := range []decimal.Decimal{decimal.Zero, dec("-1")} {
		in := validCreate()
		in.Price = price
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidPrice, price.String())
	}
}

func TestProductCreate_CategoriaInvalida(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProducts{}, collaborator("123456789"))

	in := validCreate()
	in.Category = "Lanches"
	_, err := uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete — autorização assimétrica em relação ao Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_BastaVinculoComAlgumaOrganizacao(t *testing.T) {
	// Diferente do Create, o Update não compara o vínculo com o código do
	// produto: basta estar vinculado a alguma organização.
	products := &fakeProducts{}
	uc := usecase.NewProductUseCase(products, collaborator("987654321"))

	novoNome := "Pizza Calabresa"
	_, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{Name: &novoNome})
	require.NoError(t, err)
	assert.Equal(t, 1, products.updateCalls)
}

func TestProductUpdate_SemVinculoNenhum(t *testing.T) {
	products := &fakeProducts{}
	uc := usecase.NewProductUseCase(products, collaborator(""))

	_, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, products.updateCalls)
}

func TestProductUpdate_ValidaCamposPresentes(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProducts{}, collaborator("123456789"))

	vazio := "  "
	_, err := uc.Update(context.Background(), "p1", dto.UpdateProductRequest{Name: &vazio})
	assert.ErrorIs(t, err, domain.ErrMissingName)

	negativo := dec("-5")
	_, err = uc.Update(context.Background(), "p1", dto.UpdateProductRequest{Price: &negativo})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	categoria := "Inexistente"
	_, err = uc.Update(context.Background(), "p1", dto.UpdateProductRequest{Category: &categoria})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestProductDelete_MesmaRegraDoUpdate(t *testing.T) {
	products := &fakeProducts{}
	uc := usecase.NewProductUseCase(products, collaborator("987654321"))

	require.NoError(t, uc.Delete(context.Background(), "p1"))
	assert.Equal(t, []string{"p1"}, products.deleteCalls)

	uc = usecase.NewProductUseCase(products, collaborator(""))
	assert.ErrorIs(t, uc.Delete(context.Background(), "p1"), domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListByCode
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_PublicoSoExigeFormato(t *testing.T) {
	products := &fakeProducts{listed: []*entity.Product{
		{ID: "p1", AccessCode: "123456789", Name: "Pizza", Price: dec("40"), Category: entity.CategoryPizzas, CreatedAt: time.Now()},
	}}
	uc := usecase.NewProductUseCase(products, &sessionAuth{})

	out, err := uc.ListByCode(context.Background(), "123456789", "piz", entity.CategoryPizzas)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, service.ProductFilter{Query: "piz", Category: entity.CategoryPizzas}, products.listFilter)

	_, err = uc.ListByCode(context.Background(), "123", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidCodeFormat)
}
