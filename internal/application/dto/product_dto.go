package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	CategoryID  int64           `json:"id_category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateProductRequest campos opcionales; los nil no se modifican.
type UpdateProductRequest struct {
	CategoryID  *int64           `json:"id_category"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductPublic proyección de un producto dentro de una venta.
type ProductPublic struct {
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto con la descripción de su categoría.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ProductListResponse listado de productos activos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}
