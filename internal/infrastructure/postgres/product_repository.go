package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// La categoría se une con LEFT JOIN: una categoría dada de baja no oculta sus productos.
const productSelect = `
		SELECT p.id, p.id_category, COALESCE(c.description, ''), p.description, p.price,
		       p.created_at, p.updated_at, p.deleted_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.id_category`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.CategoryDescription, &p.Description, &p.Price,
		&p.CreatedAt, &p.UpdatedAt, &p.DeletedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. Una categoría inexistente devuelve domain.ErrNotFound.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id_category, description, price)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, product.CategoryID, product.Description, product.Price).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return writeError("insert product", err)
	}
	return nil
}

// FindActiveByID obtiene un producto activo con la descripción de su categoría.
func (r *ProductRepo) FindActiveByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := productSelect + ` WHERE p.id = $1 AND ` + activeOnly("p")
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ListActive lista productos activos con paginación.
func (r *ProductRepo) ListActive(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	query := productSelect + ` WHERE ` + activeOnly("p") + ` ORDER BY p.id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza categoría, descripción y precio.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET id_category = $2, description = $3, price = $4, updated_at = now()
		WHERE id = $1 AND ` + activeOnly("") + `
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query, product.ID, product.CategoryID, product.Description, product.Price).
		Scan(&product.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return fmt.Errorf("update product: %w", domain.ErrNotFound)
		}
		return writeError("update product", err)
	}
	return nil
}

// SoftDelete marca deleted_at.
func (r *ProductRepo) SoftDelete(ctx context.Context, product *entity.Product) error {
	query := `UPDATE products SET deleted_at = now(), updated_at = now() WHERE id = $1 AND ` + activeOnly("") + ` RETURNING deleted_at`
	if err := r.q.QueryRow(ctx, query, product.ID).Scan(&product.DeletedAt); err != nil {
		if noRows(err) {
			return fmt.Errorf("delete product: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
