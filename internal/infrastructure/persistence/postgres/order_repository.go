package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OrderRepository struct {
	db *DB
	tc *TransactionCoordinator
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{
		db: db,
		tc: NewTransactionCoordinator(db),
	}
}

// Create inserts the order together with its order.created outbox message.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	m, err := toOrderModel(order)
	if err != nil {
		return err
	}

	return r.tc.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO orders (` + orderColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		_, err := tx.Exec(ctx, query,
			m.ID,
			m.OwnerEmail,
			m.Items,
			m.AmountCents,
			m.Currency,
			m.Status,
			m.PaymentReference,
			m.CreatedAt,
			m.PaidAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		msg, err := domain.NewOrderOutboxMessage(uuid.NewString(), domain.EventOrderCreated, order, order.CreatedAt)
		if err != nil {
			return err
		}
		return insertOutboxMessage(ctx, tx, msg)
	})
}

// FindByID retrieves an order
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewOrderNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}
	return order, nil
}

// FindByOwner lists an owner's orders, newest first.
func (r *OrderRepository) FindByOwner(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders WHERE owner_email = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerEmail, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query orders by owner: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return results, nil
}

// MarkPaid applies PENDING -> PAID as a single conditional update and, when
// a row changed, records the order.paid outbox message in the same
// transaction. applied is false when no pending order with that id exists;
// the caller decides whether that means unknown or already paid.
func (r *OrderRepository) MarkPaid(ctx context.Context, id, paymentReference string, paidAt time.Time) (order *domain.Order, applied bool, err error) {
	var ref *string
	if paymentReference != "" {
		ref = &paymentReference
	}

	err = r.tc.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE orders
			SET status = $2, payment_reference = $3, paid_at = $4
			WHERE id = $1 AND status = $5
			RETURNING ` + orderColumns

		o, err := scanOrder(tx.QueryRow(ctx, query, id, string(domain.StatusPaid), ref, paidAt, string(domain.StatusPending)))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("mark order %s paid: %w", id, err)
		}

		msg, err := domain.NewOrderOutboxMessage(uuid.NewString(), domain.EventOrderPaid, o, paidAt)
		if err != nil {
			return err
		}
		if err := insertOutboxMessage(ctx, tx, msg); err != nil {
			return err
		}

		order, applied = o, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, applied, nil
}
