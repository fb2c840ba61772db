//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
	"github.com/jhoicas/supermercado-api/internal/infrastructure/postgres"
	"github.com/jhoicas/supermercado-api/pkg/config"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("supermercado"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestIntegration_VentaAtomicaYBajas(t *testing.T) {
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: startPostgres(t)})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.ApplySchema(ctx, pool))

	users := postgres.NewUserRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)
	salesRepo := postgres.NewSaleRepository(pool)
	runner := postgres.NewTxRunner(pool)

	buyer := &entity.User{Name: "Ana", CPF: "111", Email: "A@x.com", PasswordHash: "hash"}
	require.NoError(t, users.Create(ctx, buyer))
	assert.Equal(t, "a@x.com", buyer.Email)

	dup := &entity.User{Name: "Otra", CPF: "222", Email: "a@x.com", PasswordHash: "hash"}
	assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrEmailAlreadyExists)

	cat := &entity.Category{Description: "Beverages"}
	require.NoError(t, categories.Create(ctx, cat))
	prod := &entity.Product{CategoryID: cat.ID, Description: "Guaraná", Price: decimal.RequireFromString("3.50")}
	require.NoError(t, products.Create(ctx, prod))

	// Producto inexistente: ni cabecera ni líneas.
	err = runner.RunSales(ctx, func(r repository.SaleRepository) error {
		s := &entity.Sale{BuyerID: buyer.ID}
		if err := r.Create(ctx, s); err != nil {
			return err
		}
		_, err := r.CreateItems(ctx, s.ID, []int64{prod.ID, 999999})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := salesRepo.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	var saleID int64
	err = runner.RunSales(ctx, func(r repository.SaleRepository) error {
		s := &entity.Sale{BuyerID: buyer.ID}
		if err := r.Create(ctx, s); err != nil {
			return err
		}
		saleID = s.ID
		_, err := r.CreateItems(ctx, s.ID, []int64{prod.ID, prod.ID})
		return err
	})
	require.NoError(t, err)

	lines, err := salesRepo.Lines(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Beverages", lines[0].Category)
	assert.True(t, decimal.RequireFromString("3.5").Equal(lines[0].Price))

	// Baja del usuario: deja de resolver y libera el email.
	require.NoError(t, users.SoftDelete(ctx, buyer))
	found, err := users.FindActiveByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, found)
	require.NoError(t, users.Create(ctx, dup))
}
