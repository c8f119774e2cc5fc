package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/infrastructure/auth"
)

// SessionMiddleware extrai o Bearer token (se houver) e o anexa ao contexto
// da requisição. NÃO rejeita requisições sem token: vários fluxos aceitam
// sessão anônima e a exigência de autenticação é dos casos de uso.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get("Authorization"))
		if token != "" {
			c.SetUserContext(auth.WithToken(c.UserContext(), token))
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
