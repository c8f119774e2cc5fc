package auth

import "context"

type contextKey int

const tokenKey contextKey = iota

// WithToken anexa o token bruto da requisição ao contexto.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext recupera o token anexado. Retorna "" se não há sessão.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
