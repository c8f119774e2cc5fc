package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/comanda-app/comanda-api/internal/application/auth"
	"github.com/comanda-app/comanda-api/internal/application/organization"
	"github.com/comanda-app/comanda-api/internal/application/usecase"
	infraauth "github.com/comanda-app/comanda-api/internal/infrastructure/auth"
	"github.com/comanda-app/comanda-api/internal/infrastructure/mail"
	"github.com/comanda-app/comanda-api/internal/infrastructure/postgres"
	"github.com/comanda-app/comanda-api/internal/infrastructure/realtime"
	infraredis "github.com/comanda-app/comanda-api/internal/infrastructure/redis"
	httpRouter "github.com/comanda-app/comanda-api/internal/interfaces/http"
	"github.com/comanda-app/comanda-api/pkg/config"
	"github.com/comanda-app/comanda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com Redis")
	}
	defer redisClient.Close()

	hub := realtime.NewHub(log, infraredis.NewTableBridge(redisClient))
	sessions := infraredis.NewSessionStore(redisClient)
	mailer := mail.New(cfg.SMTP, cfg.App.BaseURL)

	userRepo := postgres.NewUserRepository(pool)
	codeRepo := postgres.NewAccessCodeRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	tableRepo := postgres.NewTableRepository(pool, hub)

	authSvc := infraauth.NewService(userRepo, sessions, mailer, log, cfg.JWT.Secret)

	authUC := appauth.NewAuthUseCase(authSvc, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	accessCodeUC := organization.NewAccessCodeUseCase(codeRepo, authSvc)
	productUC := usecase.NewProductUseCase(productRepo, authSvc)
	tableUC := usecase.NewTableUseCase(tableRepo, authSvc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		AccessCodeUC: accessCodeUC,
		ProductUC:    productUC,
		TableUC:      tableUC,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
