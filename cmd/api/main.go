package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/supermercado-api/docs"
	"github.com/jhoicas/supermercado-api/internal/application/auth"
	"github.com/jhoicas/supermercado-api/internal/application/sales"
	"github.com/jhoicas/supermercado-api/internal/application/usecase"
	"github.com/jhoicas/supermercado-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/supermercado-api/internal/interfaces/http"
	"github.com/jhoicas/supermercado-api/pkg/config"
	"github.com/jhoicas/supermercado-api/pkg/jwt"
	"github.com/jhoicas/supermercado-api/pkg/logger"
	"github.com/jhoicas/supermercado-api/pkg/password"
)

// @title                       Supermercado API
// @version                     1.0
// @description                 Usuarios, categorías, productos y ventas con autenticación Bearer.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Precios como número JSON (3.5) y no como string ("3.5").
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	codec, err := jwt.NewCodec(jwt.Config{
		Secret:    cfg.JWT.Secret,
		Algorithm: cfg.JWT.Algorithm,
		TTL:       cfg.JWT.TTL(),
		Issuer:    cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}
	hasher := password.NewHasher(cfg.Security.BcryptCost)

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authenticator, err := auth.NewAuthenticator(userRepo, hasher, codec, log.Named("auth"))
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar autenticador")
	}
	sessions := auth.NewSessionResolver(userRepo, codec, log.Named("session"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Named("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("access")))

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Supermercado API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Authenticator: authenticator,
		Sessions:      sessions,
		UserUC:        usecase.NewUserUseCase(userRepo, hasher, sessions),
		CategoryUC:    usecase.NewCategoryUseCase(categoryRepo),
		ProductUC:     usecase.NewProductUseCase(productRepo, categoryRepo),
		SalesUC:       sales.NewUseCase(txRunner, saleRepo, log.Named("sales")),
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
