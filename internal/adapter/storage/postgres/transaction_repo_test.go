package postgres

import (
	"context"
	"testing"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransaction(merchantID uuid.UUID) *domain.Transaction {
	now := time.Now().UTC().Truncate(time.Microsecond)
	providerTxID := "txn_12345"
	return &domain.Transaction{
		ID:                    uuid.New(),
		IdempotencyKey:        "HP-001",
		MerchantID:            merchantID,
		Provider:              "standardbankpay",
		ProviderTransactionID: &providerTxID,
		ProviderResponse:      []byte(`{"processing_state":"AWAITING_CUSTOMER"}`),
		AmountCents:           5000,
		Currency:              "LSL",
		Status:                domain.TransactionStatusProcessing,
		Customer:              domain.Customer{Phone: "+26650123456"},
		PaymentMethod:         "standardbankpay",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func txnColumns() []string {
	return []string{
		"id", "idempotency_key", "merchant_id", "provider", "provider_transaction_id", "provider_response",
		"amount_cents", "currency", "status", "customer_id", "customer_phone", "customer_email", "customer_name",
		"payment_method", "metadata", "created_at", "updated_at", "completed_at",
	}
}

func txnRow(t *domain.Transaction) *pgxmock.Rows {
	return pgxmock.NewRows(txnColumns()).AddRow(
		t.ID, t.IdempotencyKey, t.MerchantID, t.Provider, t.ProviderTransactionID, t.ProviderResponse,
		t.AmountCents, t.Currency, t.Status, t.Customer.ID, t.Customer.Phone, t.Customer.Email, t.Customer.Name,
		t.PaymentMethod, t.Metadata, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
}

func TestTransactionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(
			txn.ID, txn.IdempotencyKey, txn.MerchantID, txn.Provider, txn.ProviderTransactionID, txn.ProviderResponse,
			txn.AmountCents, txn.Currency, txn.Status, txn.Customer.ID, txn.Customer.Phone, txn.Customer.Email, txn.Customer.Name,
			txn.PaymentMethod, txn.Metadata, txn.CreatedAt, txn.UpdatedAt, txn.CompletedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), nil, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(txn.ID).
		WillReturnRows(txnRow(txn))

	result, err := repo.GetByID(context.Background(), txn.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.Equal(t, txn.Provider, result.Provider)
	assert.Equal(t, txn.AmountCents, result.AmountCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(txnColumns()))

	result, err := repo.GetByID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByIDForUpdate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM transactions WHERE id .+ FOR UPDATE").
		WithArgs(txn.ID).
		WillReturnRows(txnRow(txn))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	result, err := repo.GetByIDForUpdate(context.Background(), dbTx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByIdempotencyKey(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE merchant_id .+ AND idempotency_key").
		WithArgs(txn.MerchantID, txn.IdempotencyKey).
		WillReturnRows(txnRow(txn))

	result, err := repo.GetByIdempotencyKey(context.Background(), txn.MerchantID, txn.IdempotencyKey)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, txn.IdempotencyKey, result.IdempotencyKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_GetByProviderTransactionID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE provider .+ AND provider_transaction_id").
		WithArgs(txn.Provider, *txn.ProviderTransactionID).
		WillReturnRows(txnRow(txn))

	result, err := repo.GetByProviderTransactionID(context.Background(), txn.Provider, *txn.ProviderTransactionID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, *txn.ProviderTransactionID, *result.ProviderTransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())
	txn.Status = domain.TransactionStatusCompleted

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE transactions").
		WithArgs(txn.ProviderTransactionID, txn.ProviderResponse, txn.Status, txn.Metadata, txn.UpdatedAt, txn.CompletedAt, txn.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	dbTx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Update(context.Background(), dbTx, txn)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	merchantID := uuid.New()
	txn := newTestTransaction(merchantID)

	mock.ExpectQuery("SELECT COUNT.. FROM transactions WHERE merchant_id").
		WithArgs(merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT .+ FROM transactions WHERE merchant_id .+ ORDER BY created_at DESC").
		WithArgs(merchantID, 20, 0).
		WillReturnRows(txnRow(txn))

	result, total, err := repo.List(context.Background(), ports.TransactionListParams{MerchantID: merchantID, Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, result, 1)
	assert.Equal(t, txn.ID, result[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListPendingOrProcessing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	txn := newTestTransaction(uuid.New())
	txn.Status = domain.TransactionStatusPending

	mock.ExpectQuery("SELECT .+ FROM transactions.+WHERE status IN").
		WithArgs(domain.TransactionStatusPending, domain.TransactionStatusProcessing, 100, 0).
		WillReturnRows(txnRow(txn))

	result, err := repo.ListPendingOrProcessing(context.Background(), 100, 0)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, domain.TransactionStatusPending, result[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
