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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, fmt.Errorf("description es obligatorio: %w", domain.ErrInvalidInput)
	}
	c := &entity.Category{Description: desc}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría activa.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List lista categorías activas con paginación.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListActive(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryListResponse{Categories: make([]dto.CategoryResponse, 0, len(list))}
	for _, c := range list {
		out.Categories = append(out.Categories, *toCategoryResponse(c))
	}
	return out, nil
}

// Update cambia la descripción si viene informada.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		c.Description = desc
		if err := uc.repo.Update(ctx, c); err != nil {
			return nil, err
		}
	}
	return toCategoryResponse(c), nil
}

// Delete da de baja la categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	c, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	return uc.repo.SoftDelete(ctx, c)
}

func (uc *CategoryUseCase) find(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.repo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("categoría %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Description: c.Description}
}
