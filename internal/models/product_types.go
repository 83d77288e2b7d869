package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table. Products are owned by the
// catalogue: the cart only ever reads them, so there is no update path here
// beyond the admin publish flow.
type Product struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Slug     string          `json:"slug" db:"slug"`
	Category string          `json:"category" db:"category"`
	Price    decimal.Decimal `json:"price" db:"price"`
	ImageURL string          `json:"imageUrl" db:"image_url"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
