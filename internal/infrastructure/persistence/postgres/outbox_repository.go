package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
)

type OutboxRepository struct {
	tc *TransactionCoordinator
}

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{tc: NewTransactionCoordinator(db)}
}

func insertOutboxMessage(ctx context.Context, q Executor, msg *domain.OutboxMessage) error {
	query := `
		INSERT INTO outbox_messages (id, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.Exec(ctx, query, msg.ID, msg.AggregateID, msg.EventType, msg.Payload, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

// ProcessBatch locks up to limit unprocessed messages, hands them to handle
// and stamps them processed if handle succeeds. Rows locked by another relay
// are skipped. It returns the number of messages processed.
func (r *OutboxRepository) ProcessBatch(ctx context.Context, limit int, handle func(ctx context.Context, msgs []domain.OutboxMessage) error) (int, error) {
	var processed int

	err := r.tc.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, aggregate_id, event_type, payload, created_at
			FROM outbox_messages
			WHERE processed_at IS NULL
			ORDER BY created_at
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		`, limit)
		if err != nil {
			return fmt.Errorf("query outbox messages: %w", err)
		}

		msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OutboxMessage, error) {
			var m domain.OutboxMessage
			err := row.Scan(&m.ID, &m.AggregateID, &m.EventType, &m.Payload, &m.CreatedAt)
			return m, err
		})
		if err != nil {
			return fmt.Errorf("scan outbox messages: %w", err)
		}
		if len(msgs) == 0 {
			return nil
		}

		if err := handle(ctx, msgs); err != nil {
			return err
		}

		ids := make([]string, len(msgs))
		for i, m := range msgs {
			ids[i] = m.ID
		}
		if _, err := tx.Exec(ctx,
			`UPDATE outbox_messages SET processed_at = $1 WHERE id = ANY($2)`,
			time.Now().UTC(), ids,
		); err != nil {
			return fmt.Errorf("mark outbox messages processed: %w", err)
		}

		processed = len(msgs)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

// CountByAggregate counts the messages recorded for one aggregate and event type.
func (r *OutboxRepository) CountByAggregate(ctx context.Context, aggregateID, eventType string) (int, error) {
	var n int
	err := r.tc.pool.QueryRow(ctx,
		`SELECT count(*) FROM outbox_messages WHERE aggregate_id = $1 AND event_type = $2`,
		aggregateID, eventType,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count outbox messages: %w", err)
	}
	return n, nil
}
