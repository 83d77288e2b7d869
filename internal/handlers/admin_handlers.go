package handlers

import (
	"net/http"

	"github.com/cyglobaltech/storefront-golang/internal/service"
	"github.com/gin-gonic/gin"
)

//
// --- Admin Handlers ---
//

// PublishProduct is the handler for POST /v1/admin/products. The form is
// multipart: text fields plus the product image. The image goes to blob
// storage first; the product row is only written once the URL resolves.
func (h *Handlers) PublishProduct(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded image"})
		return
	}
	defer file.Close()

	product, err := h.Catalog.Publish(c.Request.Context(), service.PublishInput{
		Name:      c.PostForm("name"),
		Category:  c.PostForm("category"),
		Price:     c.PostForm("price"),
		ImageName: fileHeader.Filename,
		Image:     file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added successfully!",
		"product": product,
	})
}

// ListAllBookings is the handler for GET /v1/admin/bookings.
func (h *Handlers) ListAllBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
