package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// WebhookRepo implements ports.WebhookRepository.
type WebhookRepo struct {
	pool Pool
}

// NewWebhookRepo creates a new WebhookRepo.
func NewWebhookRepo(pool Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

const webhookColumns = `id, transaction_id, provider, event_type, payload, signature, verified, processed, retry_count, error_message, created_at, processed_at`

func scanWebhookEvent(row pgx.Row) (*domain.WebhookEvent, error) {
	e := &domain.WebhookEvent{}
	err := row.Scan(&e.ID, &e.TransactionID, &e.Provider, &e.EventType, &e.Payload, &e.Signature, &e.Verified, &e.Processed, &e.RetryCount, &e.ErrorMessage, &e.CreatedAt, &e.ProcessedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return e, nil
}

func (r *WebhookRepo) Create(ctx context.Context, e *domain.WebhookEvent) error {
	query := `INSERT INTO webhook_events (` + webhookColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.pool.Exec(ctx, query,
		e.ID, e.TransactionID, e.Provider, e.EventType, e.Payload, e.Signature, e.Verified, e.Processed, e.RetryCount, e.ErrorMessage, e.CreatedAt, e.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook event: %w", err)
	}
	return nil
}

func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_events WHERE id = $1`
	e, err := scanWebhookEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get webhook event: %w", err)
	}
	return e, nil
}

func (r *WebhookRepo) Update(ctx context.Context, e *domain.WebhookEvent) error {
	query := `UPDATE webhook_events
		SET verified=$1, processed=$2, retry_count=$3, error_message=$4, processed_at=$5
		WHERE id=$6`
	_, err := r.pool.Exec(ctx, query, e.Verified, e.Processed, e.RetryCount, e.ErrorMessage, e.ProcessedAt, e.ID)
	if err != nil {
		return fmt.Errorf("update webhook event: %w", err)
	}
	return nil
}

// ListRetryable returns unprocessed events under the retry budget whose
// CreatedAt + RetryIntervalFor(RetryCount) has already elapsed.
func (r *WebhookRepo) ListRetryable(ctx context.Context, now time.Time) ([]domain.WebhookEvent, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_events
		WHERE processed = false AND retry_count < $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, domain.MaxWebhookRetries)
	if err != nil {
		return nil, fmt.Errorf("list retryable webhook events: %w", err)
	}
	defer rows.Close()

	var due []domain.WebhookEvent
	for rows.Next() {
		var e domain.WebhookEvent
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.Provider, &e.EventType, &e.Payload, &e.Signature, &e.Verified, &e.Processed, &e.RetryCount, &e.ErrorMessage, &e.CreatedAt, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		if !now.Before(e.DueAt()) {
			due = append(due, e)
		}
	}
	return due, rows.Err()
}

func (r *WebhookRepo) ListDeadLettered(ctx context.Context) ([]domain.WebhookEvent, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_events
		WHERE processed = false AND retry_count >= $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, domain.MaxWebhookRetries)
	if err != nil {
		return nil, fmt.Errorf("list dead-lettered webhook events: %w", err)
	}
	defer rows.Close()

	var events []domain.WebhookEvent
	for rows.Next() {
		var e domain.WebhookEvent
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.Provider, &e.EventType, &e.Payload, &e.Signature, &e.Verified, &e.Processed, &e.RetryCount, &e.ErrorMessage, &e.CreatedAt, &e.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan webhook event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
