package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Checkout & Order Handlers ---
//

// CheckoutInput carries the total the user approved on the payment
// screen. The server re-derives the real total inside the checkout
// transaction and refuses to charge anything else.
type CheckoutInput struct {
	Total decimal.Decimal `json:"total"`
}

// ConfirmCheckout is the handler for POST /v1/checkout.
func (h *Handlers) ConfirmCheckout(c *gin.Context) {
	userID := currentUserID(c)

	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	order, err := h.Checkout.Confirm(c.Request.Context(), userID, input.Total)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Your order has been placed successfully! We will notify you when it is ready.",
		"order":   order,
	})
}

// GetMyOrders is the handler for GET /v1/orders.
func (h *Handlers) GetMyOrders(c *gin.Context) {
	userID := currentUserID(c)

	orders, err := h.Store.ListOrders(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetOrderDetails is the handler for GET /v1/orders/:id.
func (h *Handlers) GetOrderDetails(c *gin.Context) {
	userID := currentUserID(c)

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	order, items, err := h.Store.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}
