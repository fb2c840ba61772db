package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto a la venta. CategoryDescription se llena en lecturas con join.
type Product struct {
	ID                  int64
	CategoryID          int64
	CategoryDescription string
	Description         string
	Price               decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}
