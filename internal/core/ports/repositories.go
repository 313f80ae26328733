package ports

import (
	"context"
	"time"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepository persists Merchant business identities.
type MerchantRepository interface {
	Create(ctx context.Context, tx pgx.Tx, m *domain.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error)
}

// AccountRepository persists Account authentication principals.
type AccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Account, error)
	UpdateAPIKeyHash(ctx context.Context, accountID uuid.UUID, apiKeyHash string) error
}

// ProviderConfigRepository persists per-merchant provider activation and
// credentials (C2).
type ProviderConfigRepository interface {
	GetActive(ctx context.Context, merchantID uuid.UUID, providerShortName string) (*domain.ProviderConfig, error)
	Upsert(ctx context.Context, cfg *domain.ProviderConfig) error
}

// TransactionRepository persists the canonical Transaction state machine.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	// GetByIDForUpdate locks the row for the duration of tx, serialising
	// concurrent state transitions on the same Transaction.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error)
	GetByIdempotencyKey(ctx context.Context, merchantID uuid.UUID, idempotencyKey string) (*domain.Transaction, error)
	GetByProviderTransactionID(ctx context.Context, provider, providerTxID string) (*domain.Transaction, error)
	Update(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	// ListPendingOrProcessing supports the reconciliation sweep (§8 scenario 6).
	ListPendingOrProcessing(ctx context.Context, limit, offset int) ([]domain.Transaction, error)
}

// TransactionListParams holds filter + pagination for C5's list operation.
type TransactionListParams struct {
	MerchantID uuid.UUID
	Provider   *string
	Status     *domain.TransactionStatus
	CustomerID *string
	Page       int
	PageSize   int
}

// TransactionListResult is C5's list() return shape.
type TransactionListResult struct {
	Items    []domain.Transaction
	Page     int
	PerPage  int
	Total    int64
	Pages    int
	HasNext  bool
	HasPrev  bool
}

// AuditRepository persists the append-only AuditLog trail.
type AuditRepository interface {
	Create(ctx context.Context, tx pgx.Tx, a *domain.AuditLog) error
	ListByTransactionID(ctx context.Context, transactionID uuid.UUID) ([]domain.AuditLog, error)
}

// WebhookRepository persists inbound WebhookEvents (C6).
type WebhookRepository interface {
	Create(ctx context.Context, e *domain.WebhookEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WebhookEvent, error)
	Update(ctx context.Context, e *domain.WebhookEvent) error
	// ListRetryable returns unprocessed events under the retry budget,
	// ordered oldest first.
	ListRetryable(ctx context.Context, now time.Time) ([]domain.WebhookEvent, error)
	// ListDeadLettered returns unprocessed events that exceeded the
	// retry budget.
	ListDeadLettered(ctx context.Context) ([]domain.WebhookEvent, error)
}

// DBTransactor starts a database transaction (pgx.Tx) wrapping a group of
// mutating repository calls plus their audit-log insert, so they commit or
// roll back together (§5).
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DeadLetterPublisher is the side-channel C6 uses to notify an external
// operator tool, over AMQP, the instant a WebhookEvent crosses into the
// dead-letter set. Postgres remains the durable source of truth —
// publishing is best-effort and must never block or fail the caller.
type DeadLetterPublisher interface {
	PublishDeadLettered(ctx context.Context, eventID uuid.UUID, provider string) error
}
