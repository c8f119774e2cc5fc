package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/comanda-app/comanda-api/internal/application/auth"
	"github.com/comanda-app/comanda-api/internal/application/organization"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
	"github.com/comanda-app/comanda-api/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	AccessCodeUC *organization.AccessCodeUseCase
	ProductUC    *usecase.ProductUseCase
	TableUC      *usecase.TableUseCase
	Log          *logger.Logger
}

// Router registra as rotas da API. O middleware de sessão só anexa o token ao
// contexto; quem exige autenticação são os casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", SessionMiddleware())

	// Auth e sessão
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Put("/role", authHandler.SetRole)
	authGroup.Post("/password/recover", authHandler.RecoverPassword)
	authGroup.Post("/password/reset", authHandler.ConfirmPasswordReset)
	authGroup.Post("/verification/resend", authHandler.ResendVerification)
	authGroup.Get("/verification", authHandler.VerificationStatus)
	authGroup.Get("/verify", authHandler.VerifyEmail)

	api.Get("/session/route", authHandler.SessionRoute)

	// Códigos de acesso / organizações
	codeHandler := NewAccessCodeHandler(deps.AccessCodeUC)
	codes := api.Group("/codes")
	codes.Post("/generate", codeHandler.Generate)
	codes.Post("/validate", codeHandler.Validate)
	codes.Get("/history", codeHandler.History)
	codes.Delete("/:code", codeHandler.Delete)

	// Cardápio
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	api.Get("/menu/:code", productHandler.ListByCode)

	// Mesas
	tableHandler := NewTableHandler(deps.TableUC, deps.Log)
	tables := api.Group("/tables")
	tables.Post("/", tableHandler.Create)
	tables.Get("/:id", tableHandler.GetByID)
	tables.Put("/:id", tableHandler.Update)
	tables.Delete("/:id", tableHandler.Delete)
	api.Get("/tenants/:code/tables", tableHandler.ListByCode)

	// Feed vivo (websocket)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/tenants/:code/tables", tableHandler.Live())
}
