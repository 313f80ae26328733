package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

const transactionColumns = `id, idempotency_key, merchant_id, provider, provider_transaction_id, provider_response,
	amount_cents, currency, status, customer_id, customer_phone, customer_email, customer_name,
	payment_method, metadata, created_at, updated_at, completed_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.IdempotencyKey, &t.MerchantID, &t.Provider, &t.ProviderTransactionID, &t.ProviderResponse,
		&t.AmountCents, &t.Currency, &t.Status, &t.Customer.ID, &t.Customer.Phone, &t.Customer.Email, &t.Customer.Name,
		&t.PaymentMethod, &t.Metadata, &t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`

	args := []any{
		t.ID, t.IdempotencyKey, t.MerchantID, t.Provider, t.ProviderTransactionID, t.ProviderResponse,
		t.AmountCents, t.Currency, t.Status, t.Customer.ID, t.Customer.Phone, t.Customer.Email, t.Customer.Name,
		t.PaymentMethod, t.Metadata, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	}

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transaction by id: %w", err)
	}
	return t, nil
}

// GetByIDForUpdate locks the transaction row within tx, serialising
// concurrent writers (verify/refund races on the same transaction).
func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`
	t, err := scanTransaction(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get transaction for update: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) GetByIdempotencyKey(ctx context.Context, merchantID uuid.UUID, idempotencyKey string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE merchant_id = $1 AND idempotency_key = $2`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, merchantID, idempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("get transaction by idempotency key: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) GetByProviderTransactionID(ctx context.Context, provider, providerTxID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE provider = $1 AND provider_transaction_id = $2`
	t, err := scanTransaction(r.pool.QueryRow(ctx, query, provider, providerTxID))
	if err != nil {
		return nil, fmt.Errorf("get transaction by provider transaction id: %w", err)
	}
	return t, nil
}

func (r *TransactionRepo) Update(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `UPDATE transactions
		SET provider_transaction_id=$1, provider_response=$2, status=$3, metadata=$4, updated_at=$5, completed_at=$6
		WHERE id=$7`
	args := []any{t.ProviderTransactionID, t.ProviderResponse, t.Status, t.Metadata, t.UpdatedAt, t.CompletedAt, t.ID}

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, args...)
	} else {
		_, err = r.pool.Exec(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var (
		conditions []string
		args       []any
	)
	conditions = append(conditions, fmt.Sprintf("merchant_id = $%d", len(args)+1))
	args = append(args, params.MerchantID)

	if params.Provider != nil {
		conditions = append(conditions, fmt.Sprintf("provider = $%d", len(args)+1))
		args = append(args, *params.Provider)
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *params.Status)
	}
	if params.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)+1))
		args = append(args, *params.CustomerID)
	}
	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf(
		`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var items []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan transaction: %w", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transactions: %w", err)
	}

	return items, total, nil
}

// ListPendingOrProcessing supports the reconciliation sweep: transactions
// that have been sitting unresolved and may need a provider status poll.
func (r *TransactionRepo) ListPendingOrProcessing(ctx context.Context, limit, offset int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE status IN ($1, $2) ORDER BY created_at ASC LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, domain.TransactionStatusPending, domain.TransactionStatusProcessing, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pending/processing transactions: %w", err)
	}
	defer rows.Close()

	var items []domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}
