package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/storage"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// CatalogService publishes products and serves the public listing.
type CatalogService struct {
	Catalog store.CatalogStore
	Blobs   storage.BlobStore
}

func NewCatalogService(catalog store.CatalogStore, blobs storage.BlobStore) *CatalogService {
	return &CatalogService{Catalog: catalog, Blobs: blobs}
}

// PublishInput is the admin "add product" form. Price arrives as the raw
// form string so parsing failures stay a validation error, not a 500.
type PublishInput struct {
	Name      string
	Category  string
	Price     string
	ImageName string
	Image     io.Reader
}

// Publish validates the form, uploads the image, and only then writes the
// product record with the resolved URL. A failed upload writes nothing:
// no orphaned products without images.
func (s *CatalogService) Publish(ctx context.Context, in PublishInput) (models.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	priceStr := strings.TrimSpace(in.Price)

	if name == "" || category == "" || priceStr == "" {
		return models.Product{}, fmt.Errorf("%w: name, category and price are all required", models.ErrValidation)
	}
	if in.Image == nil {
		return models.Product{}, fmt.Errorf("%w: a product image is required", models.ErrValidation)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: price must be a number", models.ErrValidation)
	}
	if price.IsNegative() {
		return models.Product{}, fmt.Errorf("%w: price cannot be negative", models.ErrValidation)
	}

	imageURL, err := s.Blobs.Put(ctx, in.ImageName, in.Image)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", models.ErrUploadFailed, err)
	}

	return s.Catalog.CreateProduct(ctx, models.Product{
		Name:     name,
		Slug:     slug.Make(name),
		Category: category,
		Price:    price,
		ImageURL: imageURL,
	})
}

// List returns the whole catalogue for the storefront grid.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.Catalog.ListProducts(ctx)
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id int64) (models.Product, error) {
	return s.Catalog.GetProduct(ctx, id)
}
