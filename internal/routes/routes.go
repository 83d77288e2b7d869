package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cyglobaltech/storefront-golang/internal/handlers"
	"github.com/cyglobaltech/storefront-golang/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the full route table. Protected groups sit behind the
// bearer-token middleware; the admin group also requires the
// administrator role.
func SetupRouter(h *handlers.Handlers, uploadDir string) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Uploaded product images are served straight from disk.
	router.Static("/uploads", uploadDir)

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Product Routes ---
		v1.GET("/products", h.ListProducts)
		v1.GET("/products/:id", h.GetProduct)

		// --- Protected Routes (Login Required) ---
		auth := v1.Group("/")
		auth.Use(middleware.AuthMiddleware())
		{
			auth.GET("/profile/me", h.GetProfile)

			auth.GET("/cart", h.GetCart)
			auth.POST("/cart/items", h.AddToCart)
			auth.DELETE("/cart/items/:id", h.RemoveFromCart)

			auth.POST("/checkout", h.ConfirmCheckout)
			auth.GET("/orders", h.GetMyOrders)
			auth.GET("/orders/:id", h.GetOrderDetails)

			auth.POST("/bookings/internet-cafe", h.BookInternetCafe)
			auth.POST("/bookings/phone-repair", h.BookPhoneRepair)
			auth.GET("/bookings", h.GetMyBookings)
		}

		// --- Admin-Only Routes ---
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware())
		admin.Use(middleware.AdminMiddleware(h.Store))
		{
			admin.POST("/products", h.PublishProduct)
			admin.GET("/bookings", h.ListAllBookings)
		}
	}

	return router
}
