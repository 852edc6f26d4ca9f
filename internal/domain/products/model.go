package products

import "time"

type Product struct {
	ID int64

	Name  string
	Type  string
	Price float64 // > 0
	Stock int     // >= 0

	CreatedAt time.Time
	UpdatedAt time.Time
}
