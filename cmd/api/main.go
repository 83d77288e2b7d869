package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cyglobaltech/storefront-golang/internal/database"
	"github.com/cyglobaltech/storefront-golang/internal/handlers"
	"github.com/cyglobaltech/storefront-golang/internal/routes"
	"github.com/cyglobaltech/storefront-golang/internal/service"
	"github.com/cyglobaltech/storefront-golang/internal/storage"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/joho/godotenv"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	st := store.NewMySQLStore(db)

	// --- Object Storage ---
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	blobs, err := storage.NewLocalStore(uploadDir, baseURL)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// --- Services & Handlers ---
	mergeDuplicates := os.Getenv("CART_MERGE_DUPLICATES") == "true"

	app := &handlers.Handlers{
		Store:    st,
		Cart:     service.NewCartService(st, st, mergeDuplicates),
		Checkout: service.NewCheckoutService(st),
		Catalog:  service.NewCatalogService(st, blobs),
		Bookings: service.NewBookingService(st),
	}

	// --- Background Worker ---
	// Sweeps abandoned cart line items once an hour so carts nobody came
	// back for do not pile up forever.
	cartTTLDays := 30
	if v := os.Getenv("CART_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cartTTLDays = n
		}
	}
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		log.Println("Background worker started: sweeping abandoned carts")

		for range ticker.C {
			cutoff := time.Now().AddDate(0, 0, -cartTTLDays)
			n, err := st.PurgeItemsBefore(context.Background(), cutoff)
			if err != nil {
				log.Printf("Cart sweep failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("Cart sweep removed %d stale line items", n)
			}
		}
	}()

	// --- Router Setup & Start ---
	router := routes.SetupRouter(app, uploadDir)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
