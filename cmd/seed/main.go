// seed crea el schema (si falta) y un conjunto mínimo de datos de demo:
// un usuario, categorías y productos. Es idempotente; lo que ya existe se omite.
//
// Uso: go run ./cmd/seed --email admin@supermercado.local --password admin123
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/application/usecase"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supermercado-api/pkg/config"
	"github.com/jhoicas/supermercado-api/pkg/logger"
	"github.com/jhoicas/supermercado-api/pkg/password"
)

type seedOptions struct {
	name        string
	cpf         string
	email       string
	password    string
	timeout     time.Duration
	applySchema bool
}

// catálogo de demo: categoría -> productos (descripción, precio)
var catalog = []struct {
	category string
	products []struct{ description, price string }
}{
	{"Beverages", []struct{ description, price string }{{"Guaraná 2L", "3.50"}, {"Água mineral 500ml", "1.20"}}},
	{"Bakery", []struct{ description, price string }{{"Pão francês", "0.75"}, {"Bolo de fubá", "12.90"}}},
	{"Produce", []struct{ description, price string }{{"Banana (kg)", "4.99"}}},
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de demo en la base",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVar(&opts.name, "name", "Administrador", "nombre del usuario de demo")
	cmd.Flags().StringVar(&opts.cpf, "cpf", "00000000000", "cpf del usuario de demo")
	cmd.Flags().StringVar(&opts.email, "email", "admin@supermercado.local", "email del usuario de demo")
	cmd.Flags().StringVar(&opts.password, "password", "admin123", "contraseña del usuario de demo")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "timeout total de la carga")
	cmd.Flags().BoolVar(&opts.applySchema, "schema", true, "crear tablas e índices que falten")
	return cmd
}

func runSeed(cmd *cobra.Command, opts *seedOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("seed")

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	if opts.applySchema {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			return err
		}
		log.Info().Msg("schema aplicado")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	hasher := password.NewHasher(cfg.Security.BcryptCost)

	// El seed no tiene actor: ninguna operación con dueño se usa aquí.
	users := usecase.NewUserUseCase(userRepo, hasher, denyAll{})
	user, err := users.Register(ctx, dto.CreateUserRequest{
		Name: opts.name, CPF: opts.cpf, Email: opts.email, Password: opts.password,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		log.Info().Str("email", opts.email).Msg("usuario ya existe, se omite")
	case err != nil:
		return fmt.Errorf("crear usuario: %w", err)
	default:
		log.Info().Int64("id", user.ID).Str("email", user.Email).Msg("usuario creado")
	}

	existing, err := categoryRepo.ListActive(ctx, 1000, 0)
	if err != nil {
		return err
	}
	byDescription := make(map[string]int64, len(existing))
	for _, c := range existing {
		byDescription[c.Description] = c.ID
	}
	products, err := productRepo.ListActive(ctx, 1000, 0)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		seen[p.Description] = true
	}

	categories := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	for _, group := range catalog {
		categoryID, ok := byDescription[group.category]
		if !ok {
			out, err := categories.Create(ctx, dto.CreateCategoryRequest{Description: group.category})
			if err != nil {
				return fmt.Errorf("crear categoría %q: %w", group.category, err)
			}
			categoryID = out.ID
			log.Info().Int64("id", categoryID).Str("description", group.category).Msg("categoría creada")
		}
		for _, p := range group.products {
			if seen[p.description] {
				continue
			}
			out, err := productUC.Create(ctx, dto.CreateProductRequest{
				CategoryID:  categoryID,
				Description: p.description,
				Price:       decimal.RequireFromString(p.price),
			})
			if err != nil {
				return fmt.Errorf("crear producto %q: %w", p.description, err)
			}
			log.Info().Int64("id", out.ID).Str("description", out.Description).Msg("producto creado")
		}
	}
	cmd.Println("seed completo")
	return nil
}

type denyAll struct{}

func (denyAll) Authorize(*entity.User, int64) error { return domain.ErrForbidden }
