package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, description, created_at, updated_at, deleted_at`

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Description, &c.CreatedAt, &c.UpdatedAt, &c.DeletedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (description) VALUES ($1) RETURNING id, created_at, updated_at`,
		category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return writeError("insert category", err)
	}
	return nil
}

// FindActiveByID obtiene una categoría activa.
func (r *CategoryRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1 AND ` + activeOnly("")
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ListActive lista categorías activas con paginación.
func (r *CategoryRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE ` + activeOnly("") + ` ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update cambia la descripción.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET description = $2, updated_at = now() WHERE id = $1 AND ` + activeOnly("") + ` RETURNING updated_at`
	if err := r.q.QueryRow(ctx, query, category.ID, category.Description).Scan(&category.UpdatedAt); err != nil {
		if noRows(err) {
			return fmt.Errorf("update category: %w", domain.ErrNotFound)
		}
		return writeError("update category", err)
	}
	return nil
}

// SoftDelete marca deleted_at.
func (r *CategoryRepo) SoftDelete(ctx context.Context, category *entity.Category) error {
	query := `UPDATE categories SET deleted_at = now(), updated_at = now() WHERE id = $1 AND ` + activeOnly("") + ` RETURNING deleted_at`
	if err := r.q.QueryRow(ctx, query, category.ID).Scan(&category.DeletedAt); err != nil {
		if noRows(err) {
			return fmt.Errorf("delete category: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
