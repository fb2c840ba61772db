package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Es dueña exclusiva de sus líneas.
type Sale struct {
	ID        int64
	BuyerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	Items     []SaleLine
}

// SaleItem línea persistida: referencia a un producto dentro de una venta.
type SaleItem struct {
	ID        int64
	SaleID    int64
	ProductID int64
}

// SaleLine vista desnormalizada de una línea (join producto + categoría).
type SaleLine struct {
	ItemID      int64
	ProductID   int64
	Category    string
	Description string
	Price       decimal.Decimal
}
