package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the model for the 'orders' table. An order is created exactly
// once by a successful checkout and never mutated afterward; fulfillment
// happens elsewhere.
type Order struct {
	ID         int64           `json:"id" db:"id"`
	UserID     int64           `json:"userId" db:"user_id"`
	Total      decimal.Decimal `json:"total" db:"total"`
	PaymentRef string          `json:"paymentRef" db:"payment_ref"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem is the model for the 'order_items' table: a snapshot of one
// cart line item at the moment checkout committed.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"orderId" db:"order_id"`
	ProductID int64           `json:"productId" db:"product_id"`
	Name      string          `json:"name" db:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
	Quantity  int             `json:"quantity" db:"quantity"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
