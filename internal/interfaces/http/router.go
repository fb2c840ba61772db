package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/supermercado-api/internal/application/auth"
	"github.com/jhoicas/supermercado-api/internal/application/sales"
	"github.com/jhoicas/supermercado-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Authenticator *auth.Authenticator
	Sessions      *auth.SessionResolver
	UserUC        *usecase.UserUseCase
	CategoryUC    *usecase.CategoryUseCase
	ProductUC     *usecase.ProductUseCase
	SalesUC       *sales.UseCase
	ServiceName   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	requireUser := AuthMiddleware(deps.Sessions)

	// Auth: emisión pública, renovación con token vigente
	authHandler := NewAuthHandler(deps.Authenticator)
	authGroup := app.Group("/auth")
	authGroup.Post("/token", authHandler.Token)
	authGroup.Post("/token/refresh", requireUser, authHandler.Refresh)

	// Users: alta pública, resto protegido y solo sobre el propio usuario
	userHandler := NewUserHandler(deps.UserUC)
	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", requireUser, userHandler.List)
	users.Get("/:id", requireUser, userHandler.GetByID)
	users.Put("/:id", requireUser, userHandler.Update)
	users.Delete("/:id", requireUser, userHandler.Delete)

	categories := app.Group("/categories", requireUser)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	products := app.Group("/products", requireUser)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	salesGroup := app.Group("/sales", requireUser)
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
}
