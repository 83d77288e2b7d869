// Package service holds the business rules between the HTTP handlers and
// the store: totals, validation, and the checkout transition.
package service

import (
	"context"
	"fmt"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/shopspring/decimal"
)

// CartService derives cart state and guards the line-item invariants.
type CartService struct {
	Carts   store.CartStore
	Catalog store.CatalogStore

	// MergeDuplicates controls what a repeated add of the same product
	// does. Off (the historical behavior) every add appends its own line
	// item; on, the existing line's quantity is bumped instead.
	MergeDuplicates bool
}

func NewCartService(carts store.CartStore, catalog store.CatalogStore, mergeDuplicates bool) *CartService {
	return &CartService{Carts: carts, Catalog: catalog, MergeDuplicates: mergeDuplicates}
}

// Total is the sum of unit price x quantity over all items. Decimal
// arithmetic keeps currency exact; an empty cart totals zero.
func Total(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func IsEmpty(items []models.CartItem) bool {
	return len(items) == 0
}

// List returns the user's current cart contents.
func (s *CartService) List(ctx context.Context, userID int64) ([]models.CartItem, error) {
	return s.Carts.ListItems(ctx, userID)
}

// Add resolves the product from the catalogue and appends a line item
// carrying the product's name and price as of right now.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		return models.CartItem{}, fmt.Errorf("%w: quantity must be at least 1", models.ErrValidation)
	}

	product, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return models.CartItem{}, err
	}

	return s.Carts.AddItem(ctx, userID, product, quantity, s.MergeDuplicates)
}

// Remove deletes one line item from the user's cart.
func (s *CartService) Remove(ctx context.Context, userID, itemID int64) error {
	return s.Carts.RemoveItem(ctx, userID, itemID)
}
