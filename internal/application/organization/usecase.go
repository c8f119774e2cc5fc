package organization

import (
	"context"
	"sort"
	"time"

	"github.com/comanda-app/comanda-api/internal/application/dto"
	"github.com/comanda-app/comanda-api/internal/domain"
	"github.com/comanda-app/comanda-api/internal/domain/accesscode"
	"github.com/comanda-app/comanda-api/internal/domain/entity"
	"github.com/comanda-app/comanda-api/internal/domain/service"
)

// AccessCodeUseCase ciclo de vida do código de acesso: geração do tenant,
// validação com vínculo de usuário e remoção administrativa.
type AccessCodeUseCase struct {
	codes service.AccessCodeService
	auth  service.AuthService
}

// NewAccessCodeUseCase constrói o caso de uso.
func NewAccessCodeUseCase(codes service.AccessCodeService, auth service.AuthService) *AccessCodeUseCase {
	return &AccessCodeUseCase{codes: codes, auth: auth}
}

// Generate cria uma organização nova com código único. Geração anônima é
// permitida: sem sessão a organização nasce sem dono.
// A sequência importa: gerar código → criar organização → vincular usuário.
// O vínculo só acontece se a criação deu certo; falhas sobem sem retry e o
// estado parcial fica como está.
func (uc *AccessCodeUseCase) Generate(ctx context.Context, in dto.GenerateCodeRequest) (*dto.OrganizationResponse, error) {
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	code, err := uc.codes.GenerateUniqueCode(ctx)
	if err != nil {
		return nil, err
	}
	org := &entity.Organization{
		ID:         code,
		AccessCode: code,
		Name:       in.Name,
		CreatedAt:  time.Now(),
	}
	if user != nil {
		org.OwnerUserID = user.ID
		org.OwnerEmail = user.Email
	}
	if err := uc.codes.CreateOrganizationWithCode(ctx, org); err != nil {
		return nil, err
	}
	if user != nil {
		if err := uc.auth.SetUserOrganization(ctx, user.ID, code); err != nil {
			return nil, err
		}
		if err := uc.auth.AddCodeToHistory(ctx, user.ID, code); err != nil {
			return nil, err
		}
	}
	return toOrganizationResponse(org), nil
}

// Validate normaliza o código digitado (aceita separadores como "123-456-789"),
// valida o formato e, havendo sessão, vincula o usuário à organização.
// O incremento de membros NÃO é idempotente: revalidar o mesmo código com o
// mesmo usuário soma de novo. Comportamento herdado do produto; ver DESIGN.md.
func (uc *AccessCodeUseCase) Validate(ctx context.Context, in dto.ValidateCodeRequest) (*dto.OrganizationResponse, error) {
	code := accesscode.Normalize(in.Code)
	if !accesscode.IsValid(code) {
		return nil, domain.ErrInvalidCodeFormat
	}
	org, err := uc.codes.GetOrganizationByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrCodeNotFound
	}
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user != nil {
		if err := uc.auth.SetUserOrganization(ctx, user.ID, code); err != nil {
			return nil, err
		}
		if err := uc.auth.AddCodeToHistory(ctx, user.ID, code); err != nil {
			return nil, err
		}
		if err := uc.codes.UpdateMembersCount(ctx, code, 1); err != nil {
			return nil, err
		}
	}
	return toOrganizationResponse(org), nil
}

// History devolve o histórico de códigos do usuário da sessão, mais recente
// primeiro. Sem sessão o resultado é lista vazia, nunca erro.
func (uc *AccessCodeUseCase) History(ctx context.Context) ([]dto.CodeHistoryEntryResponse, error) {
	user, err := uc.auth.CurrentUser(ctx)
	if err != nil || user == nil {
		return []dto.CodeHistoryEntryResponse{}, nil
	}
	entries, err := uc.auth.CodeHistory(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})
	out := make([]dto.CodeHistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.CodeHistoryEntryResponse{Code: e.Code, At: e.At})
	}
	return out, nil
}

// Delete remove a organização pelo código. Sem validação nem autorização
// neste nível: a responsabilidade é da rota administrativa que chama.
func (uc *AccessCodeUseCase) Delete(ctx context.Context, code string) error {
	return uc.codes.DeleteOrganizationByCode(ctx, code)
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	if o == nil {
		return nil
	}
	return &dto.OrganizationResponse{
		ID:           o.ID,
		AccessCode:   o.AccessCode,
		Name:         o.Name,
		OwnerUserID:  o.OwnerUserID,
		OwnerEmail:   o.OwnerEmail,
		MembersCount: o.MembersCount,
		CreatedAt:    o.CreatedAt,
	}
}
