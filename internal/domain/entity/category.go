package entity

import "time"

// Category agrupa productos.
type Category struct {
	ID          int64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
