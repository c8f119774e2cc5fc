package domain

import "errors"

// Erros de domínio (sem dependências externas). As mensagens são exibidas
// diretamente ao usuário final, por isso ficam em português.
var (
	ErrMissingCredentials = errors.New("informe e-mail e senha")
	ErrMissingFields      = errors.New("preencha todos os campos")
	ErrWeakPassword       = errors.New("a senha deve ter pelo menos 6 caracteres")
	ErrInvalidEmail       = errors.New("e-mail inválido")
	ErrInvalidCredentials = errors.New("e-mail ou senha incorretos")
	ErrInvalidRole        = errors.New("perfil de usuário inválido")
	ErrNotAuthenticated   = errors.New("usuário não autenticado")
	ErrUnauthorized       = errors.New("usuário sem permissão nesta organização")
	ErrInvalidCodeFormat  = errors.New("o código de acesso deve ter 9 dígitos")
	ErrCodeNotFound       = errors.New("código de acesso não encontrado")
	ErrMissingName        = errors.New("o nome é obrigatório")
	ErrInvalidPrice       = errors.New("o preço deve ser maior que zero")
	ErrInvalidCategory    = errors.New("categoria inválida")
	ErrInvalidOrders      = errors.New("a comanda tem itens inválidos")
	ErrNotFound           = errors.New("recurso não encontrado")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists = errors.New("o e-mail já está cadastrado")
	ErrInvalidToken       = errors.New("token inválido ou expirado")
)
