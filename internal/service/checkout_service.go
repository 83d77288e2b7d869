package service

import (
	"context"
	"fmt"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutService turns a cart into an order. The store does the heavy
// lifting in one transaction; this layer owns the payment reference and
// the error contract.
type CheckoutService struct {
	Orders store.OrderStore
}

func NewCheckoutService(orders store.OrderStore) *CheckoutService {
	return &CheckoutService{Orders: orders}
}

// Confirm converts the user's cart into a persisted order and empties the
// cart, atomically. expectedTotal is the total the user approved on the
// payment screen; if the cart no longer adds up to it the confirm fails
// with models.ErrInconsistentTotal and nothing is written, so the caller
// can re-display the cart and try again. A confirm that fails for any
// reason leaves the cart exactly as it was — retrying is always safe.
func (s *CheckoutService) Confirm(ctx context.Context, userID int64, expectedTotal decimal.Decimal) (models.Order, error) {
	if userID <= 0 {
		return models.Order{}, models.ErrNotAuthenticated
	}
	if expectedTotal.IsNegative() {
		return models.Order{}, fmt.Errorf("%w: total cannot be negative", models.ErrValidation)
	}

	// One reference per order so retried confirms stay distinguishable in
	// the payment provider's records.
	paymentRef := "CAPITEC-SIM-" + uuid.New().String()

	return s.Orders.CreateOrderFromCart(ctx, userID, expectedTotal, paymentRef)
}
