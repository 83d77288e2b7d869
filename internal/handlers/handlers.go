package handlers

import (
	"errors"
	"net/http"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/service"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/gin-gonic/gin"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Store    store.Store
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Catalog  *service.CatalogService
	Bookings *service.BookingService
}

// currentUserID reads the user id AuthMiddleware attached to the context.
func currentUserID(c *gin.Context) int64 {
	userIDRaw, _ := c.Get("userID")
	userID, _ := userIDRaw.(int64)
	return userID
}

// respondError maps service/store errors onto HTTP statuses with a
// message fit for direct display. Failures never crash the process; the
// worst case is a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty. Add items first."})
	case errors.Is(err, models.ErrInconsistentTotal):
		c.JSON(http.StatusConflict, gin.H{"error": "Your cart changed while you were paying. Please review it and try again."})
	case errors.Is(err, models.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Image upload failed. Please try again."})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service temporarily unavailable. Please try again."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
