package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryStore implements Store with in-memory maps. It backs the unit
// tests and lets the API run without a database; the mutex gives it the
// same per-operation atomicity the SQL store gets from transactions.
type MemoryStore struct {
	mu sync.Mutex

	nextID    int64
	cartItems map[int64]models.CartItem // itemID -> item
	products  map[int64]models.Product
	orders    map[int64]models.Order
	orderRows map[int64][]models.OrderItem // orderID -> snapshots
	bookings  map[int64]models.Booking
	users     map[int64]models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cartItems: make(map[int64]models.CartItem),
		products:  make(map[int64]models.Product),
		orders:    make(map[int64]models.Order),
		orderRows: make(map[int64][]models.OrderItem),
		bookings:  make(map[int64]models.Booking),
		users:     make(map[int64]models.User),
	}
}

// id allocates the next identifier. Callers must hold mu.
func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

//
// --- Cart ---
//

func (s *MemoryStore) ListItems(_ context.Context, userID int64) ([]models.CartItem, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := []models.CartItem{}
	for _, item := range s.cartItems {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sortCartItems(items)
	return items, nil
}

func (s *MemoryStore) AddItem(_ context.Context, userID int64, product models.Product, quantity int, merge bool) (models.CartItem, error) {
	if userID <= 0 {
		return models.CartItem{}, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if merge {
		// Bump the oldest matching line only, so duplicates left over
		// from append-only adds never all absorb the quantity.
		var oldest int64
		for id, item := range s.cartItems {
			if item.UserID == userID && item.ProductID == product.ID {
				if oldest == 0 || id < oldest {
					oldest = id
				}
			}
		}
		if oldest != 0 {
			item := s.cartItems[oldest]
			item.Quantity += quantity
			s.cartItems[oldest] = item
			return item, nil
		}
	}

	item := models.CartItem{
		ID:        s.id(),
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	s.cartItems[item.ID] = item
	return item, nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, userID, itemID int64) error {
	if userID <= 0 {
		return models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.cartItems[itemID]
	if !ok || item.UserID != userID {
		return models.ErrNotFound
	}
	delete(s.cartItems, itemID)
	return nil
}

func (s *MemoryStore) ClearItems(_ context.Context, userID int64) error {
	if userID <= 0 {
		return models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.cartItems {
		if item.UserID == userID {
			delete(s.cartItems, id)
		}
	}
	return nil
}

func (s *MemoryStore) PurgeItemsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, item := range s.cartItems {
		if item.CreatedAt.Before(cutoff) {
			delete(s.cartItems, id)
			n++
		}
	}
	return n, nil
}

//
// --- Catalogue ---
//

func (s *MemoryStore) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := []models.Product{}
	for _, p := range s.products {
		products = append(products, p)
	}
	sortNewestFirst(products, func(p models.Product) int64 { return p.ID })
	return products, nil
}

func (s *MemoryStore) GetProduct(_ context.Context, id int64) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return models.Product{}, models.ErrNotFound
	}
	return p, nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p models.Product) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.id()
	p.CreatedAt = time.Now()
	s.products[p.ID] = p
	return p, nil
}

//
// --- Orders ---
//

func (s *MemoryStore) CreateOrderFromCart(_ context.Context, userID int64, expectedTotal decimal.Decimal, paymentRef string) (models.Order, error) {
	if userID <= 0 {
		return models.Order{}, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var items []models.CartItem
	total := decimal.Zero
	for _, item := range s.cartItems {
		if item.UserID == userID {
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}
	if !total.Equal(expectedTotal) {
		return models.Order{}, models.ErrInconsistentTotal
	}

	now := time.Now()
	order := models.Order{
		ID:         s.id(),
		UserID:     userID,
		Total:      total,
		PaymentRef: paymentRef,
		CreatedAt:  now,
	}
	s.orders[order.ID] = order

	snapshots := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		snapshots = append(snapshots, models.OrderItem{
			ID:        s.id(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			CreatedAt: now,
		})
		delete(s.cartItems, item.ID)
	}
	s.orderRows[order.ID] = snapshots

	return order, nil
}

func (s *MemoryStore) ListOrders(_ context.Context, userID int64) ([]models.Order, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []models.Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sortNewestFirst(orders, func(o models.Order) int64 { return o.ID })
	return orders, nil
}

func (s *MemoryStore) GetOrder(_ context.Context, userID, orderID int64) (models.Order, []models.OrderItem, error) {
	if userID <= 0 {
		return models.Order{}, nil, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok || o.UserID != userID {
		return models.Order{}, nil, models.ErrNotFound
	}
	return o, s.orderRows[orderID], nil
}

//
// --- Bookings ---
//

func (s *MemoryStore) CreateBooking(_ context.Context, b models.Booking) (models.Booking, error) {
	if b.UserID <= 0 {
		return models.Booking{}, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = s.id()
	b.CreatedAt = time.Now()
	s.bookings[b.ID] = b
	return b, nil
}

func (s *MemoryStore) ListBookings(_ context.Context, userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := []models.Booking{}
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sortNewestFirst(bookings, func(b models.Booking) int64 { return b.ID })
	return bookings, nil
}

func (s *MemoryStore) ListAllBookings(_ context.Context) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bookings := []models.Booking{}
	for _, b := range s.bookings {
		bookings = append(bookings, b)
	}
	sortNewestFirst(bookings, func(b models.Booking) int64 { return b.ID })
	return bookings, nil
}

//
// --- Users ---
//

func (s *MemoryStore) CreateUser(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.id()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (s *MemoryStore) GetUser(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) GetUserRole(_ context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return "", models.ErrNotFound
	}
	return u.Role, nil
}

// sortCartItems keeps listing order stable (insertion order by id).
func sortCartItems(items []models.CartItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

// sortNewestFirst orders listings the same way the SQL store does:
// most recent rows first. IDs are monotonic here, so they double as
// creation order without the tie-breaking trouble of timestamps.
func sortNewestFirst[T any](rows []T, id func(T) int64) {
	sort.Slice(rows, func(i, j int) bool { return id(rows[i]) > id(rows[j]) })
}
