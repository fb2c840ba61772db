package sales

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var salesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sales_created_total",
	Help: "Ventas creadas por resultado.",
}, []string{"result"})

// UseCase compone ventas: cabecera + líneas en una transacción y la vista desnormalizada.
type UseCase struct {
	tx     TxRunner
	repo   repository.SaleRepository
	logger zerolog.Logger
}

// NewUseCase construye el caso de uso. repo se usa para lecturas fuera de transacción.
func NewUseCase(tx TxRunner, repo repository.SaleRepository, logger zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, repo: repo, logger: logger}
}

// Create inserta la venta y todas sus líneas de forma atómica y devuelve la venta con
// categoría, descripción y precio de cada producto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.BuyerID <= 0 || len(in.Products) == 0 {
		salesCreated.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("venta sin comprador o sin productos: %w", domain.ErrInvalidInput)
	}
	productIDs := make([]int64, 0, len(in.Products))
	for _, p := range in.Products {
		if p.ProductID <= 0 {
			salesCreated.WithLabelValues("invalid").Inc()
			return nil, fmt.Errorf("product_id inválido %d: %w", p.ProductID, domain.ErrInvalidInput)
		}
		productIDs = append(productIDs, p.ProductID)
	}

	sale := &entity.Sale{BuyerID: in.BuyerID}
	err := uc.tx.RunSales(ctx, func(saleRepo repository.SaleRepository) error {
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if _, err := saleRepo.CreateItems(ctx, sale.ID, productIDs); err != nil {
			return err
		}
		lines, err := saleRepo.Lines(ctx, sale.ID)
		if err != nil {
			return err
		}
		sale.Items = lines
		return nil
	})
	if err != nil {
		salesCreated.WithLabelValues("error").Inc()
		return nil, err
	}
	salesCreated.WithLabelValues("ok").Inc()
	uc.logger.Info().Int64("sale_id", sale.ID).Int64("buyer_id", sale.BuyerID).Int("items", len(sale.Items)).Msg("venta creada")
	return toSaleResponse(sale), nil
}

// List devuelve las ventas activas, cada una con sus líneas.
func (uc *UseCase) List(ctx context.Context) (*dto.SaleListResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	lines, err := uc.repo.LinesBySaleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{Sales: make([]dto.SaleResponse, 0, len(list))}
	for _, s := range list {
		s.Items = lines[s.ID]
		out.Sales = append(out.Sales, *toSaleResponse(s))
	}
	return out, nil
}

// Find obtiene una venta por ID. Las ventas dadas de baja siguen siendo consultables.
func (uc *UseCase) Find(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, fmt.Errorf("venta %d: %w", id, domain.ErrNotFound)
	}
	lines, err := uc.repo.Lines(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = lines
	return toSaleResponse(sale), nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	products := make([]dto.ProductPublic, 0, len(s.Items))
	for _, l := range s.Items {
		products = append(products, dto.ProductPublic{
			Category:    l.Category,
			Description: l.Description,
			Price:       l.Price,
		})
	}
	return &dto.SaleResponse{ID: s.ID, BuyerID: s.BuyerID, Products: products}
}
