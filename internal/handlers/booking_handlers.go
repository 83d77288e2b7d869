package handlers

import (
	"net/http"

	"github.com/cyglobaltech/storefront-golang/internal/service"
	"github.com/gin-gonic/gin"
)

//
// --- Booking Handlers ---
//

// BookInternetCafe is the handler for POST /v1/bookings/internet-cafe.
func (h *Handlers) BookInternetCafe(c *gin.Context) {
	userID := currentUserID(c)

	var input service.CafeBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	booking, err := h.Bookings.SubmitCafeBooking(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed",
		"booking": booking,
	})
}

// BookPhoneRepair is the handler for POST /v1/bookings/phone-repair.
func (h *Handlers) BookPhoneRepair(c *gin.Context) {
	userID := currentUserID(c)

	var input service.RepairBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	booking, err := h.Bookings.SubmitRepairBooking(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Repair request received",
		"booking": booking,
	})
}

// GetMyBookings is the handler for GET /v1/bookings.
func (h *Handlers) GetMyBookings(c *gin.Context) {
	userID := currentUserID(c)

	bookings, err := h.Bookings.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
