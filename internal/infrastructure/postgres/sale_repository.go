package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/supermercado-api/internal/domain"
	"github.com/jhoicas/supermercado-api/internal/domain/entity"
	"github.com/jhoicas/supermercado-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, id_user, created_at, updated_at, deleted_at`

const saleLinesSelect = `
		SELECT ps.id_sale, ps.id, p.id, COALESCE(c.description, ''), p.description, p.price
		FROM product_sales ps
		JOIN products p ON p.id = ps.id_product
		LEFT JOIN categories c ON c.id = p.id_category`

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.BuyerID, &s.CreatedAt, &s.UpdatedAt, &s.DeletedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste la cabecera de la venta. Un comprador inexistente devuelve domain.ErrNotFound.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO sales (id_user) VALUES ($1) RETURNING id, created_at, updated_at`,
		sale.BuyerID,
	).Scan(&sale.ID, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return writeError("insert sale", err)
	}
	return nil
}

// CreateItems inserta todas las líneas en una sola sentencia, respetando el orden recibido.
// Solo se aceptan productos activos: si falta alguno devuelve domain.ErrNotFound y el caller hace rollback.
func (r *SaleRepo) CreateItems(ctx context.Context, saleID int64, productIDs []int64) ([]entity.SaleItem, error) {
	query := `
		INSERT INTO product_sales (id_sale, id_product)
		SELECT $1, p.id
		FROM unnest($2::bigint[]) WITH ORDINALITY AS ref(product_id, ord)
		JOIN products p ON p.id = ref.product_id AND ` + activeOnly("p") + `
		ORDER BY ref.ord
		RETURNING id, id_sale, id_product`
	rows, err := r.q.Query(ctx, query, saleID, productIDs)
	if err != nil {
		return nil, writeError("insert sale items", err)
	}
	defer rows.Close()
	items := make([]entity.SaleItem, 0, len(productIDs))
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, writeError("insert sale items", err)
	}
	if len(items) != len(productIDs) {
		return nil, fmt.Errorf("insert sale items: producto inexistente o dado de baja: %w", domain.ErrNotFound)
	}
	return items, nil
}

// Lines obtiene las líneas de una venta unidas a producto y categoría.
func (r *SaleRepo) Lines(ctx context.Context, saleID int64) ([]entity.SaleLine, error) {
	bySale, err := r.queryLines(ctx, saleLinesSelect+` WHERE ps.id_sale = $1 ORDER BY ps.id`, saleID)
	if err != nil {
		return nil, err
	}
	lines := bySale[saleID]
	if lines == nil {
		lines = []entity.SaleLine{}
	}
	return lines, nil
}

// LinesBySaleIDs obtiene las líneas de varias ventas en una sola consulta.
func (r *SaleRepo) LinesBySaleIDs(ctx context.Context, saleIDs []int64) (map[int64][]entity.SaleLine, error) {
	if len(saleIDs) == 0 {
		return map[int64][]entity.SaleLine{}, nil
	}
	return r.queryLines(ctx, saleLinesSelect+` WHERE ps.id_sale = ANY($1) ORDER BY ps.id_sale, ps.id`, saleIDs)
}

func (r *SaleRepo) queryLines(ctx context.Context, query string, arg any) (map[int64][]entity.SaleLine, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list sale lines: %w", err)
	}
	defer rows.Close()
	out := make(map[int64][]entity.SaleLine)
	for rows.Next() {
		var saleID int64
		var l entity.SaleLine
		if err := rows.Scan(&saleID, &l.ItemID, &l.ProductID, &l.Category, &l.Description, &l.Price); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		out[saleID] = append(out[saleID], l)
	}
	return out, rows.Err()
}

// GetByID obtiene una venta por ID, incluida una dada de baja.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// ListActive lista las ventas activas ordenadas por ID.
func (r *SaleRepo) ListActive(ctx context.Context) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE `+activeOnly("")+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
