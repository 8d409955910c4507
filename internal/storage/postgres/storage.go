package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/sharkpay/checkout/internal/domain/errors"
	"github.com/sharkpay/checkout/internal/domain/model"
)

// DB is the subset of pgxpool.Pool the storage uses. pgxmock satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage is the order repository backed by PostgreSQL.
type Storage struct {
	db     DB
	logger *slog.Logger
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

	storage := &Storage{db: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            status TEXT NOT NULL,
            amount_cents BIGINT NOT NULL,
            buyer_email TEXT NOT NULL,
            buyer_name TEXT NOT NULL DEFAULT '',
            buyer_tax_id TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL,
            gateway TEXT NOT NULL,
            gateway_reference TEXT,
            utm_source TEXT NOT NULL DEFAULT '',
            qr_code TEXT NOT NULL DEFAULT '',
            qr_code_text TEXT NOT NULL DEFAULT '',
            redirect_url TEXT NOT NULL DEFAULT '',
            expires_at TIMESTAMPTZ,
            paid_at TIMESTAMPTZ,
            error_message TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_gateway_reference ON orders(gateway_reference) WHERE gateway_reference IS NOT NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

const orderColumns = `id, status, amount_cents, buyer_email, buyer_name, buyer_tax_id,
       payment_method, gateway, gateway_reference, utm_source,
       qr_code, qr_code_text, redirect_url, expires_at, paid_at, error_message, created_at`

// Upsert inserts the order if the id is unknown. ON CONFLICT DO NOTHING keeps a
// retried checkout from overwriting an order that already advanced past pending.
func (s *Storage) Upsert(ctx context.Context, order *model.Order) (*model.Order, bool, error) {
	const query = `INSERT INTO orders
        (id, status, amount_cents, buyer_email, buyer_name, buyer_tax_id,
         payment_method, gateway, utm_source, error_message)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO NOTHING
        RETURNING created_at`

	created := *order
	err := s.db.QueryRow(ctx, query,
		order.ID, order.Status, order.AmountCents,
		order.BuyerEmail, order.BuyerName, order.BuyerTaxID,
		order.PaymentMethod, order.Gateway, order.UTMSource, order.ErrorMessage,
	).Scan(&created.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := s.GetByID(ctx, order.ID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return &created, true, nil
}

// GetByID returns the order or domain ErrNotFound.
func (s *Storage) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`

	var (
		o   model.Order
		ref *string
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Status, &o.AmountCents, &o.BuyerEmail, &o.BuyerName, &o.BuyerTaxID,
		&o.PaymentMethod, &o.Gateway, &ref, &o.UTMSource,
		&o.QRCode, &o.QRCodeText, &o.RedirectURL, &o.ExpiresAt, &o.PaidAt, &o.ErrorMessage, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if ref != nil {
		o.GatewayReference = *ref
	}
	return &o, nil
}

// AttachCharge stores the gateway reference and method-specific display payload.
// The WHERE guard makes the reference write-once: a repeated attach is a no-op.
func (s *Storage) AttachCharge(ctx context.Context, id string, charge *model.ChargeResult) error {
	const query = `UPDATE orders
        SET gateway_reference=$2, qr_code=$3, qr_code_text=$4, redirect_url=$5, expires_at=$6
        WHERE id=$1 AND gateway_reference IS NULL`

	tag, err := s.db.Exec(ctx, query,
		id, charge.GatewayReference, charge.QRCode, charge.QRCodeText, charge.RedirectURL, charge.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Warn("gateway reference already attached", slog.String("order_id", id))
	}
	return nil
}

// TransitionFromPending applies a terminal status with a compare-and-set on the
// current status. A miss means the order already left pending; callers treat
// that as an idempotent no-op.
func (s *Storage) TransitionFromPending(ctx context.Context, id string, status model.OrderStatus, paidAt *time.Time, message string) (bool, error) {
	const query = `UPDATE orders SET status=$2, paid_at=$3, error_message=$4
        WHERE id=$1 AND status='pending'`

	tag, err := s.db.Exec(ctx, query, id, status, paidAt, message)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.db.Ping(ctx)
}
