package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem defines the struct for the 'cart_items' table. There is no
// separate carts table: a user's cart is simply every line item scoped to
// their user id.
//
// Name and UnitPrice are denormalized from the product at add time, so the
// cart keeps showing what the user agreed to even if the catalogue price
// moves later. Checkout re-reads these rows, not the catalogue.
type CartItem struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"userId" db:"user_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// LineTotal is unit price x quantity for this single line.
func (ci CartItem) LineTotal() decimal.Decimal {
	return ci.UnitPrice.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
