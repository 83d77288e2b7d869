package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyglobaltech/storefront-golang/internal/auth"
	"github.com/cyglobaltech/storefront-golang/internal/handlers"
	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/cyglobaltech/storefront-golang/internal/routes"
	"github.com/cyglobaltech/storefront-golang/internal/service"
	"github.com/cyglobaltech/storefront-golang/internal/storage"
	"github.com/cyglobaltech/storefront-golang/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	router *gin.Engine
	store  *store.MemoryStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	dir := t.TempDir()
	blobs, err := storage.NewLocalStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	h := &handlers.Handlers{
		Store:    st,
		Cart:     service.NewCartService(st, st, false),
		Checkout: service.NewCheckoutService(st),
		Catalog:  service.NewCatalogService(st, blobs),
		Bookings: service.NewBookingService(st),
	}
	return &testApp{router: routes.SetupRouter(h, dir), store: st}
}

// newUser seeds an account and returns a bearer token for it.
func (a *testApp) newUser(t *testing.T, role string) (int64, string) {
	t.Helper()
	u, err := a.store.CreateUser(context.Background(), models.User{
		Role:  role,
		Email: fmt.Sprintf("user%s@example.com", role),
	})
	require.NoError(t, err)

	token, err := auth.GenerateToken(u.ID)
	require.NoError(t, err)
	return u.ID, token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func seedCatalogProduct(t *testing.T, st *store.MemoryStore, name, price string) models.Product {
	t.Helper()
	p, err := st.CreateProduct(context.Background(), models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func TestCartEndpointsRequireAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartAndCheckoutFlow(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newUser(t, "customer")

	a := seedCatalogProduct(t, app.store, "Gaming Monitor", "150.00")
	b := seedCatalogProduct(t, app.store, "Office Chair", "300.00")

	// Add both products.
	w := app.do(t, http.MethodPost, "/v1/cart/items", token, gin.H{"productId": a.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = app.do(t, http.MethodPost, "/v1/cart/items", token, gin.H{"productId": b.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Cart shows both lines and the 450.00 total.
	w = app.do(t, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart struct {
		Items []models.CartItem `json:"items"`
		Total decimal.Decimal   `json:"total"`
		Empty bool              `json:"empty"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 2)
	assert.False(t, cart.Empty)
	assert.True(t, cart.Total.Equal(decimal.RequireFromString("450.00")))

	// A stale displayed total is refused.
	w = app.do(t, http.MethodPost, "/v1/checkout", token, gin.H{"total": "450.01"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The right total goes through.
	w = app.do(t, http.MethodPost, "/v1/checkout", token, gin.H{"total": "450.00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Cart is empty afterwards; checking out again is the empty-cart case.
	w = app.do(t, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.True(t, cart.Empty)

	w = app.do(t, http.MethodPost, "/v1/checkout", token, gin.H{"total": "0"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Exactly one order exists.
	w = app.do(t, http.MethodGet, "/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orderList struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderList))
	require.Len(t, orderList.Orders, 1)
	assert.True(t, orderList.Orders[0].Total.Equal(decimal.RequireFromString("450.00")))
}

func TestRemoveCartItem(t *testing.T) {
	app := newTestApp(t)
	userID, token := app.newUser(t, "customer")

	p := seedCatalogProduct(t, app.store, "Headset", "99.00")
	item, err := app.store.AddItem(context.Background(), userID, p, 1, false)
	require.NoError(t, err)

	w := app.do(t, http.MethodDelete, fmt.Sprintf("/v1/cart/items/%d", item.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second delete of the same id is a 404.
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/v1/cart/items/%d", item.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingEndpoints(t *testing.T) {
	app := newTestApp(t)
	_, token := app.newUser(t, "customer")

	w := app.do(t, http.MethodPost, "/v1/bookings/internet-cafe", token, gin.H{
		"date": "2026-09-12", "time": "14:00", "duration": "2 hours", "numUsers": "3",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodPost, "/v1/bookings/phone-repair", token, gin.H{
		"name": "Thabo", "phone": "0821234567", "email": "bad-email", "device": "Pixel", "problem": "screen",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/v1/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bookings struct {
		Bookings []models.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bookings))
	assert.Len(t, bookings.Bookings, 1)
}

func TestAdminPublishProduct(t *testing.T) {
	app := newTestApp(t)
	_, customerToken := app.newUser(t, "customer")
	_, adminToken := app.newUser(t, "administrator")

	makeForm := func(price string) (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("name", "Monitor"))
		require.NoError(t, mw.WriteField("category", "Electronics"))
		require.NoError(t, mw.WriteField("price", price))
		fw, err := mw.CreateFormFile("image", "monitor.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	post := func(token, price string) *httptest.ResponseRecorder {
		body, contentType := makeForm(price)
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/products", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		return w
	}

	// Customers are locked out of the admin group.
	assert.Equal(t, http.StatusForbidden, post(customerToken, "1999.99").Code)

	// A non-numeric price is a validation error, nothing written.
	assert.Equal(t, http.StatusBadRequest, post(adminToken, "abc").Code)
	products, err := app.store.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	// A valid form publishes the product with a resolved image URL.
	w := post(adminToken, "1999.99")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	products, err = app.store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Contains(t, products[0].ImageURL, "/uploads/")
}
