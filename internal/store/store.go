// Package store holds the persistence interfaces and their two
// implementations: MySQL for real deployments and an in-memory store for
// tests and database-less development.
package store

import (
	"context"
	"time"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/shopspring/decimal"
)

// CartStore is the per-user keyed storage of cart line items.
type CartStore interface {
	// ListItems returns every line item in the user's cart. A cart with
	// no items is an empty slice, not an error.
	ListItems(ctx context.Context, userID int64) ([]models.CartItem, error)

	// AddItem persists a new line item with the product's name and price
	// denormalized onto it. With merge off every add appends its own row,
	// even for a product already in the cart; with merge on an existing
	// row for the same product gets its quantity bumped instead.
	AddItem(ctx context.Context, userID int64, product models.Product, quantity int, merge bool) (models.CartItem, error)

	// RemoveItem deletes one line item. Removing an id that is not there
	// (including the loser of a concurrent double-delete) is
	// models.ErrNotFound.
	RemoveItem(ctx context.Context, userID, itemID int64) error

	// ClearItems deletes every line item for the user.
	ClearItems(ctx context.Context, userID int64) error

	// PurgeItemsBefore deletes line items created before the cutoff,
	// regardless of user. Used by the housekeeping worker only.
	PurgeItemsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CatalogStore is the durable product catalogue.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (models.Product, error)
}

// OrderStore owns the cart-to-order transition and order retrieval.
type OrderStore interface {
	// CreateOrderFromCart atomically turns the user's cart into an order:
	// re-reads the line items, recomputes the total, writes the order and
	// its item snapshots, and clears the cart — all of it commits or none
	// of it does. Fails with models.ErrEmptyCart when there is nothing to
	// order and models.ErrInconsistentTotal when the recomputed total
	// differs from expectedTotal.
	CreateOrderFromCart(ctx context.Context, userID int64, expectedTotal decimal.Decimal, paymentRef string) (models.Order, error)

	ListOrders(ctx context.Context, userID int64) ([]models.Order, error)
	GetOrder(ctx context.Context, userID, orderID int64) (models.Order, []models.OrderItem, error)
}

// BookingStore persists service bookings. Bookings are write-once from the
// API's point of view.
type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]models.Booking, error)
	ListAllBookings(ctx context.Context) ([]models.Booking, error)
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	GetUserRole(ctx context.Context, id int64) (string, error)
}

// Store is everything the application persists.
type Store interface {
	CartStore
	CatalogStore
	OrderStore
	BookingStore
	UserStore
}
