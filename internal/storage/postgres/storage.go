package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/tiffinbox/tiffinbox/internal/domain/errors"
	"github.com/tiffinbox/tiffinbox/internal/domain/model"
	"github.com/tiffinbox/tiffinbox/internal/domain/repository"
)

// dbPool is the slice of pgxpool.Pool the storage uses. Tests substitute a
// pgxmock pool through it.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// newPgxPool is swapped out by tests to inject a mock pool.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type menuRepository struct {
	storage *Storage
}

type addressRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
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

// Factory methods for domain repositories.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Menus() repository.MenuRepository {
	return &menuRepository{storage: s}
}

func (s *Storage) Addresses() repository.AddressRepository {
	return &addressRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
            currency TEXT NOT NULL DEFAULT 'INR',
            status TEXT NOT NULL,
            order_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            payment_session_id TEXT NOT NULL DEFAULT '',
            payment JSONB NOT NULL DEFAULT '{}',
            payment_confirmed_at TIMESTAMPTZ,
            items JSONB NOT NULL DEFAULT '[]',
            refunds JSONB NOT NULL DEFAULT '[]',
            delivery_addresses JSONB NOT NULL DEFAULT '{}',
            invoice_url TEXT NOT NULL DEFAULT '',
            version BIGINT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS menus (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            vendor_id TEXT NOT NULL,
            price JSONB NOT NULL DEFAULT '{}'
        )`,
		`CREATE TABLE IF NOT EXISTS customer_addresses (
            user_id TEXT NOT NULL,
            meal_time TEXT NOT NULL,
            address JSONB NOT NULL DEFAULT '{}',
            PRIMARY KEY (user_id, meal_time)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, order_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders((payment->>'status'))`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, user_id, total_amount, currency, status, order_date,
                      payment_session_id, payment, payment_confirmed_at,
                      items, refunds, delivery_addresses, invoice_url,
                      version, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o         model.Order
		payment   []byte
		items     []byte
		refunds   []byte
		addresses []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Currency, &o.Status,
		&o.OrderDate, &o.PaymentSessionID, &payment, &o.PaymentConfirmedAt,
		&items, &refunds, &addresses, &o.InvoiceURL,
		&o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(payment, &o.PaymentDetails); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(refunds, &o.Refunds); err != nil {
		return nil, fmt.Errorf("decode refunds: %w", err)
	}
	if err := json.Unmarshal(addresses, &o.DeliveryAddresses); err != nil {
		return nil, fmt.Errorf("decode delivery addresses: %w", err)
	}
	return &o, nil
}

func encodeOrder(order *model.Order) (payment, items, refunds, addresses []byte, err error) {
	if payment, err = json.Marshal(order.PaymentDetails); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode payment: %w", err)
	}
	if order.Items == nil {
		items = []byte("[]")
	} else if items, err = json.Marshal(order.Items); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode items: %w", err)
	}
	if order.Refunds == nil {
		refunds = []byte("[]")
	} else if refunds, err = json.Marshal(order.Refunds); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode refunds: %w", err)
	}
	if order.DeliveryAddresses == nil {
		addresses = []byte("{}")
	} else if addresses, err = json.Marshal(order.DeliveryAddresses); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("encode delivery addresses: %w", err)
	}
	return payment, items, refunds, addresses, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	payment, items, refunds, addresses, err := encodeOrder(order)
	if err != nil {
		return err
	}

	const query = `INSERT INTO orders
                   (id, user_id, total_amount, currency, status, order_date,
                    payment_session_id, payment, payment_confirmed_at,
                    items, refunds, delivery_addresses, invoice_url, version)
                   VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,1)
                   ON CONFLICT (id) DO NOTHING
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query,
		order.ID, order.UserID, order.TotalAmount, order.Currency, order.Status,
		order.OrderDate, order.PaymentSessionID, payment, order.PaymentConfirmedAt,
		items, refunds, addresses, order.InvoiceURL,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrConflict
		}
		return err
	}
	order.Version = 1
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// Save rewrites the aggregate guarded by the version the caller loaded.
// A zero rows-affected result means a concurrent writer advanced the row
// (or it vanished); the caller reloads and retries.
func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	payment, items, refunds, addresses, err := encodeOrder(order)
	if err != nil {
		return err
	}

	const query = `UPDATE orders
                   SET total_amount=$2, currency=$3, status=$4,
                       payment=$5, payment_confirmed_at=$6,
                       items=$7, refunds=$8, delivery_addresses=$9,
                       invoice_url=$10, version=version+1, updated_at=NOW()
                   WHERE id=$1 AND version=$11`
	tag, err := r.storage.pool.Exec(ctx, query,
		order.ID, order.TotalAmount, order.Currency, order.Status,
		payment, order.PaymentConfirmedAt,
		items, refunds, addresses, order.InvoiceURL,
		order.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, order.ID); errors.Is(getErr, domainErrors.ErrNotFound) {
			return domainErrors.ErrNotFound
		}
		return domainErrors.ErrVersionConflict
	}
	order.Version++
	order.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) ListByVendor(ctx context.Context, vendorID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE EXISTS (
                  SELECT 1 FROM jsonb_array_elements(items) AS item
                  WHERE item->>'vendor' = $1
              )
              ORDER BY order_date DESC`
	return r.list(ctx, query, vendorID)
}

func (r *orderRepository) ListPaid(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE payment->>'status' IN ('SUCCESS', 'PAID')
              ORDER BY order_date DESC`
	return r.list(ctx, query)
}

// --- MenuRepository implementation ---

func (r *menuRepository) MealPrices(ctx context.Context, menuIDs []string) (map[string]model.MealPrices, error) {
	result := make(map[string]model.MealPrices, len(menuIDs))
	if len(menuIDs) == 0 {
		return result, nil
	}

	const query = `SELECT id, price FROM menus WHERE id = ANY($1)`
	rows, err := r.storage.pool.Query(ctx, query, menuIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    string
			price []byte
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		var prices model.MealPrices
		if err := json.Unmarshal(price, &prices); err != nil {
			return nil, fmt.Errorf("decode menu price: %w", err)
		}
		result[id] = prices
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AddressRepository implementation ---

func (r *addressRepository) MealTimeAddress(ctx context.Context, userID string, mt model.MealTime) (*model.Address, error) {
	const query = `SELECT address FROM customer_addresses WHERE user_id=$1 AND meal_time=$2`
	var raw []byte
	err := r.storage.pool.QueryRow(ctx, query, userID, string(mt)).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var addr model.Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return nil, fmt.Errorf("decode address: %w", err)
	}
	return &addr, nil
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
