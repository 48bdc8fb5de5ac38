package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/tulamia/orderdesk/internal/domain/errors"
	"github.com/tulamia/orderdesk/internal/domain/model"
	"github.com/tulamia/orderdesk/internal/domain/repository"
)

// DB is the pool surface the storage needs. Both *pgxpool.Pool and the
// pgxmock pool satisfy it.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. It is the remote
// tier of the order data gateway.
type Storage struct {
	pool   DB
	logger *slog.Logger
}

type catalogRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Catalog returns the menu item repository.
func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

// Orders returns the order repository.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            description_i18n JSONB,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            emoji TEXT,
            tags TEXT[],
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS customers (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT,
            fulfillment TEXT NOT NULL DEFAULT 'pickup',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_id TEXT NOT NULL REFERENCES customers(id),
            subtotal DOUBLE PRECISION NOT NULL DEFAULT 0,
            service_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            delivery_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            payment_provider TEXT NOT NULL,
            payment_status TEXT NOT NULL,
            payment_reference TEXT,
            notes TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id BIGSERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            menu_item_id TEXT,
            quantity INTEGER NOT NULL,
            unit_price DOUBLE PRECISION NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CatalogRepository implementation ---

const menuItemColumns = `id, name, COALESCE(description, ''), description_i18n, price, COALESCE(emoji, ''), COALESCE(tags, '{}'), is_active`

func scanMenuItem(row pgx.Row) (model.MenuItem, error) {
	var (
		item model.MenuItem
		i18n []byte
	)
	err := row.Scan(&item.ID, &item.Name, &item.Description.Plain, &i18n, &item.Price, &item.Emoji, &item.Tags, &item.Active)
	if err != nil {
		return model.MenuItem{}, err
	}
	if len(i18n) > 0 {
		if err := json.Unmarshal(i18n, &item.Description.ByLocale); err != nil {
			return model.MenuItem{}, fmt.Errorf("decode description_i18n: %w", err)
		}
	}
	return item, nil
}

func (r *catalogRepository) ActiveItems(ctx context.Context) ([]model.MenuItem, error) {
	query := `SELECT ` + menuItemColumns + ` FROM menu_items WHERE is_active ORDER BY name ASC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *catalogRepository) UpsertItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	query := `INSERT INTO menu_items (id, name, description, description_i18n, price, emoji, tags, is_active)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
              ON CONFLICT (id) DO UPDATE SET
                  name = EXCLUDED.name,
                  description = EXCLUDED.description,
                  description_i18n = EXCLUDED.description_i18n,
                  price = EXCLUDED.price,
                  emoji = EXCLUDED.emoji,
                  tags = EXCLUDED.tags,
                  is_active = EXCLUDED.is_active
              RETURNING ` + menuItemColumns

	var i18n []byte
	if len(item.Description.ByLocale) > 0 {
		encoded, err := json.Marshal(item.Description.ByLocale)
		if err != nil {
			return model.MenuItem{}, fmt.Errorf("encode description_i18n: %w", err)
		}
		i18n = encoded
	}

	row := r.storage.pool.QueryRow(ctx, query,
		item.ID, item.Name, item.Description.Plain, i18n, item.Price, item.Emoji, item.Tags, item.Active)
	return scanMenuItem(row)
}

func (r *catalogRepository) DeleteItem(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderRepository implementation ---

const orderColumns = `o.id, o.created_at, o.subtotal, o.service_fee, o.delivery_fee, o.total,
       o.payment_provider, o.payment_status, COALESCE(o.payment_reference, ''), COALESCE(o.notes, ''),
       COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.fulfillment, 'pickup')`

func scanOrder(row pgx.Row) (model.Order, error) {
	var o model.Order
	var provider, status, fulfillment string
	err := row.Scan(&o.ID, &o.CreatedAt, &o.Totals.Subtotal, &o.Totals.ServiceFee, &o.Totals.DeliveryFee, &o.Totals.Total,
		&provider, &status, &o.Payment.Reference, &o.Customer.Notes,
		&o.Customer.Name, &o.Customer.Email, &fulfillment)
	if err != nil {
		return model.Order{}, err
	}
	o.Payment.Provider = model.PaymentProvider(provider)
	o.Payment.Status = model.PaymentStatus(status)
	o.Customer.Fulfillment = model.Fulfillment(fulfillment)
	return o, nil
}

// CreateOrder inserts customer, order and line items inside one
// transaction and returns the server-assigned order id.
func (r *orderRepository) CreateOrder(ctx context.Context, order model.Order) (string, error) {
	customerID := uuid.NewString()
	orderID := uuid.NewString()

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertCustomer = `INSERT INTO customers (id, name, email, fulfillment) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, insertCustomer, customerID, order.Customer.Name, order.Customer.Email, string(order.Customer.Fulfillment)); err != nil {
			return fmt.Errorf("insert customer: %w", err)
		}

		const insertOrder = `INSERT INTO orders (id, customer_id, subtotal, service_fee, delivery_fee, total,
                                payment_provider, payment_status, payment_reference, notes)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		if _, err := tx.Exec(ctx, insertOrder, orderID, customerID,
			order.Totals.Subtotal, order.Totals.ServiceFee, order.Totals.DeliveryFee, order.Totals.Total,
			string(order.Payment.Provider), string(order.Payment.Status), order.Payment.Reference, order.Customer.Notes); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price) VALUES ($1, $2, $3, $4)`
		for _, line := range order.Cart {
			if _, err := tx.Exec(ctx, insertItem, orderID, line.ID, line.Quantity, line.UnitPrice); err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders o LEFT JOIN customers c ON c.id = o.customer_id
              WHERE o.id = $1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	lines, err := r.itemsForOrders(ctx, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Cart = lines[order.ID]
	return &order, nil
}

// ListRecent returns at most limit orders, newest first. Line items carry
// only quantity and unit price; line totals are derived by the gateway.
func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + `
              FROM orders o LEFT JOIN customers c ON c.id = o.customer_id
              ORDER BY o.created_at DESC LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	lines, err := r.itemsForOrders(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Cart = lines[orders[i].ID]
	}
	return orders, nil
}

func (r *orderRepository) itemsForOrders(ctx context.Context, orderIDs []string) (map[string][]model.OrderLine, error) {
	const query = `SELECT oi.order_id, COALESCE(oi.menu_item_id, ''), COALESCE(mi.name, ''), oi.quantity, oi.unit_price
                   FROM order_items oi LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
                   WHERE oi.order_id = ANY($1)
                   ORDER BY oi.id`
	rows, err := r.storage.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.OrderLine, len(orderIDs))
	for rows.Next() {
		var orderID string
		var line model.OrderLine
		if err := rows.Scan(&orderID, &line.ID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		result[orderID] = append(result[orderID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SetPaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) (*model.Order, error) {
	tag, err := r.storage.pool.Exec(ctx, `UPDATE orders SET payment_status = $1 WHERE id = $2`, string(status), orderID)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return r.GetOrder(ctx, orderID)
}

func (r *orderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
