package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cyglobaltech/storefront-golang/internal/models"
	"github.com/shopspring/decimal"
)

// MySQLStore implements Store on top of a database/sql pool.
type MySQLStore struct {
	DB *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{DB: db}
}

// storeErr wraps driver failures so callers can treat them as the
// transient "please resubmit" case without inspecting driver internals.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}

//
// --- Cart ---
//

func (s *MySQLStore) ListItems(ctx context.Context, userID int64) ([]models.CartItem, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}

	query := `
		SELECT id, user_id, product_id, name, unit_price, quantity, created_at
		FROM cart_items
		WHERE user_id = ?
		ORDER BY created_at, id`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID,
			&item.Name, &item.UnitPrice, &item.Quantity, &item.CreatedAt,
		); err != nil {
			return nil, storeErr(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return items, nil
}

func (s *MySQLStore) AddItem(ctx context.Context, userID int64, product models.Product, quantity int, merge bool) (models.CartItem, error) {
	if userID <= 0 {
		return models.CartItem{}, models.ErrNotAuthenticated
	}

	now := time.Now()

	if merge {
		return s.addItemMerged(ctx, userID, product, quantity, now)
	}

	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, name, unit_price, quantity, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, product.ID, product.Name, product.Price, quantity, now)
	if err != nil {
		return models.CartItem{}, storeErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.CartItem{}, storeErr(err)
	}

	return models.CartItem{
		ID:        id,
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
		CreatedAt: now,
	}, nil
}

// addItemMerged bumps the oldest line item for the product, or inserts a
// fresh one if the cart has none. Locking one row inside a transaction
// keeps the bump targeting exactly that row even when duplicate lines
// exist (the flag can be switched on over an append-only history) and
// closes the window a concurrent remove could otherwise race into.
func (s *MySQLStore) addItemMerged(ctx context.Context, userID int64, product models.Product, quantity int, now time.Time) (models.CartItem, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.CartItem{}, storeErr(err)
	}
	defer tx.Rollback() // Safety net

	var item models.CartItem
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, name, unit_price, quantity, created_at
		FROM cart_items
		WHERE user_id = ? AND product_id = ?
		ORDER BY id
		LIMIT 1
		FOR UPDATE`, userID, product.ID).Scan(
		&item.ID, &item.UserID, &item.ProductID,
		&item.Name, &item.UnitPrice, &item.Quantity, &item.CreatedAt)

	switch {
	case err == nil:
		item.Quantity += quantity
		if _, err := tx.ExecContext(ctx,
			"UPDATE cart_items SET quantity = ? WHERE id = ?",
			item.Quantity, item.ID); err != nil {
			return models.CartItem{}, storeErr(err)
		}
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (user_id, product_id, name, unit_price, quantity, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			userID, product.ID, product.Name, product.Price, quantity, now)
		if err != nil {
			return models.CartItem{}, storeErr(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return models.CartItem{}, storeErr(err)
		}
		item = models.CartItem{
			ID:        id,
			UserID:    userID,
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  quantity,
			CreatedAt: now,
		}
	default:
		return models.CartItem{}, storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return models.CartItem{}, storeErr(err)
	}
	return item, nil
}

func (s *MySQLStore) RemoveItem(ctx context.Context, userID, itemID int64) error {
	if userID <= 0 {
		return models.ErrNotAuthenticated
	}

	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = ? AND user_id = ?", itemID, userID)
	if err != nil {
		return storeErr(err)
	}

	// Deleting a row that is already gone (double-delete race) loses.
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *MySQLStore) ClearItems(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return models.ErrNotAuthenticated
	}
	if _, err := s.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *MySQLStore) PurgeItemsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM cart_items WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, storeErr(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

//
// --- Catalogue ---
//

func (s *MySQLStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `
		SELECT id, name, slug, category, price, image_url, created_at
		FROM products
		ORDER BY created_at DESC`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &p.Category, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return products, nil
}

func (s *MySQLStore) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, name, slug, category, price, image_url, created_at
		FROM products WHERE id = ?`, id).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Category, &p.Price, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, models.ErrNotFound
		}
		return models.Product{}, storeErr(err)
	}
	return p, nil
}

func (s *MySQLStore) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	now := time.Now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO products (name, slug, category, price, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Slug, p.Category, p.Price, p.ImageURL, now)
	if err != nil {
		return models.Product{}, storeErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, storeErr(err)
	}
	p.ID = id
	p.CreatedAt = now
	return p, nil
}

//
// --- Orders ---
//

func (s *MySQLStore) CreateOrderFromCart(ctx context.Context, userID int64, expectedTotal decimal.Decimal, paymentRef string) (models.Order, error) {
	if userID <= 0 {
		return models.Order{}, models.ErrNotAuthenticated
	}

	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return models.Order{}, storeErr(err)
	}
	defer tx.Rollback() // Safety net

	// Re-read the cart under lock; the committed rows are the source of
	// truth, not whatever total the client last rendered.
	rows, err := tx.QueryContext(ctx, `
		SELECT id, product_id, name, unit_price, quantity
		FROM cart_items
		WHERE user_id = ?
		FOR UPDATE`, userID)
	if err != nil {
		return models.Order{}, storeErr(err)
	}

	var items []models.CartItem
	total := decimal.Zero
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity); err != nil {
			rows.Close()
			return models.Order{}, storeErr(err)
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return models.Order{}, storeErr(err)
	}
	rows.Close()

	if len(items) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}
	if !total.Equal(expectedTotal) {
		return models.Order{}, models.ErrInconsistentTotal
	}

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
		INSERT INTO orders (user_id, total, payment_ref, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, total, paymentRef, now)
	if err != nil {
		return models.Order{}, storeErr(err)
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return models.Order{}, storeErr(err)
	}

	for _, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.Name, item.UnitPrice, item.Quantity, now)
		if err != nil {
			return models.Order{}, storeErr(err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = ?", userID); err != nil {
		return models.Order{}, storeErr(err)
	}

	if err := tx.Commit(); err != nil {
		return models.Order{}, storeErr(err)
	}

	return models.Order{
		ID:         orderID,
		UserID:     userID,
		Total:      total,
		PaymentRef: paymentRef,
		CreatedAt:  now,
	}, nil
}

func (s *MySQLStore) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, total, payment_ref, created_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.PaymentRef, &o.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return orders, nil
}

func (s *MySQLStore) GetOrder(ctx context.Context, userID, orderID int64) (models.Order, []models.OrderItem, error) {
	if userID <= 0 {
		return models.Order{}, nil, models.ErrNotAuthenticated
	}

	var o models.Order
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, total, payment_ref, created_at
		FROM orders
		WHERE id = ? AND user_id = ?`, orderID, userID).Scan(
		&o.ID, &o.UserID, &o.Total, &o.PaymentRef, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, nil, models.ErrNotFound
		}
		return models.Order{}, nil, storeErr(err)
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, order_id, product_id, name, unit_price, quantity, created_at
		FROM order_items
		WHERE order_id = ?`, o.ID)
	if err != nil {
		return models.Order{}, nil, storeErr(err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.UnitPrice, &item.Quantity, &item.CreatedAt); err != nil {
			return models.Order{}, nil, storeErr(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return models.Order{}, nil, storeErr(err)
	}

	return o, items, nil
}

//
// --- Bookings ---
//

func (s *MySQLStore) CreateBooking(ctx context.Context, b models.Booking) (models.Booking, error) {
	if b.UserID <= 0 {
		return models.Booking{}, models.ErrNotAuthenticated
	}

	now := time.Now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO bookings
			(user_id, service_type, status, date, time, duration, num_users,
			 name, phone, email, device, problem, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.ServiceType, b.Status,
		b.Date, b.Time, b.Duration, b.NumUsers,
		b.Name, b.Phone, b.Email, b.Device, b.Problem, now)
	if err != nil {
		return models.Booking{}, storeErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.Booking{}, storeErr(err)
	}
	b.ID = id
	b.CreatedAt = now
	return b, nil
}

func (s *MySQLStore) ListBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	if userID <= 0 {
		return nil, models.ErrNotAuthenticated
	}
	return s.queryBookings(ctx, `
		SELECT id, user_id, service_type, status, date, time, duration, num_users,
		       name, phone, email, device, problem, created_at
		FROM bookings
		WHERE user_id = ?
		ORDER BY created_at DESC`, userID)
}

func (s *MySQLStore) ListAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.queryBookings(ctx, `
		SELECT id, user_id, service_type, status, date, time, duration, num_users,
		       name, phone, email, device, problem, created_at
		FROM bookings
		ORDER BY created_at DESC`)
}

func (s *MySQLStore) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.ServiceType, &b.Status,
			&b.Date, &b.Time, &b.Duration, &b.NumUsers,
			&b.Name, &b.Phone, &b.Email, &b.Device, &b.Problem, &b.CreatedAt,
		); err != nil {
			return nil, storeErr(err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}

	return bookings, nil
}

//
// --- Users ---
//

func (s *MySQLStore) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (role, email, password_hash, full_name, phone_number, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Role, u.Email, u.PasswordHash, u.FullName, u.PhoneNumber, now, now)
	if err != nil {
		return models.User{}, storeErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, storeErr(err)
	}
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, role, email, password_hash, full_name, phone_number, created_at, updated_at
		FROM users WHERE email = ?`, email).Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, storeErr(err)
	}
	return u, nil
}

func (s *MySQLStore) GetUser(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, role, email, password_hash, full_name, phone_number, created_at, updated_at
		FROM users WHERE id = ?`, id).Scan(
		&u.ID, &u.Role, &u.Email, &u.PasswordHash, &u.FullName, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, models.ErrNotFound
		}
		return models.User{}, storeErr(err)
	}
	return u, nil
}

func (s *MySQLStore) GetUserRole(ctx context.Context, id int64) (string, error) {
	var role string
	err := s.DB.QueryRowContext(ctx,
		"SELECT role FROM users WHERE id = ?", id).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", models.ErrNotFound
		}
		return "", storeErr(err)
	}
	return role, nil
}
