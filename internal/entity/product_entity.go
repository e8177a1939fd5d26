package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a flattened catalog row: brand and category are resolved to
// their names at query time. Rows handed to a conversation are snapshots,
// the cart keeps the price that was valid when the product was shown.
type Product struct {
	Id          uuid.UUID
	Name        string
	Description string
	CostPrice   float64
	SalePrice   float64
	Stock       int
	Brand       string
	Category    string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

type Brand struct {
	Id   uuid.UUID
	Name string
}

type Category struct {
	Id   uuid.UUID
	Name string
}
