package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/supermercado-api/internal/application/dto"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cada producto pertenece a una categoría activa.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// Create crea un producto. Una categoría inexistente devuelve domain.ErrInvalidCategory.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" || in.Price.IsNegative() {
		return nil, fmt.Errorf("description obligatorio y price no negativo: %w", domain.ErrInvalidInput)
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	product := &entity.Product{
		CategoryID:          category.ID,
		CategoryDescription: category.Description,
		Description:         desc,
		Price:               in.Price,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto activo.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListActive(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Products: make([]dto.ProductResponse, 0, len(list))}
	for _, p := range list {
		out.Products = append(out.Products, *toProductResponse(p))
	}
	return out, nil
}

// Update modifica los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		category, err := uc.category(ctx, *in.CategoryID)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
		product.CategoryDescription = category.Description
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("price no puede ser negativo: %w", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete da de baja el producto. Las ventas que ya lo referencian no cambian.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	product, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, product)
}

func (uc *ProductUseCase) find(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return product, nil
}

func (uc *ProductUseCase) category(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := uc.categories.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}
	return category, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Category:    p.CategoryDescription,
		Description: p.Description,
		Price:       p.Price,
	}
}
