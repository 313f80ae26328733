package postgres

import (
	"context"
	"testing"
	"time"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	a := &domain.AuditLog{ID: uuid.New(), TransactionID: uuid.New(), EventType: domain.EventPaymentCompleted, EventData: []byte(`{}`), Timestamp: time.Now().UTC()}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(a.ID, a.TransactionID, a.EventType, a.EventData, a.UserID, a.ClientIP, a.UserAgent, a.Timestamp).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), nil, a)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_ListByTransactionID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	txnID := uuid.New()
	a := domain.AuditLog{ID: uuid.New(), TransactionID: txnID, EventType: domain.EventPaymentInitiated, EventData: []byte(`{}`), Timestamp: time.Now().UTC()}

	mock.ExpectQuery("SELECT .+ FROM audit_logs WHERE transaction_id").
		WithArgs(txnID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "transaction_id", "event_type", "event_data", "user_id", "client_ip", "user_agent", "timestamp"}).
			AddRow(a.ID, a.TransactionID, a.EventType, a.EventData, a.UserID, a.ClientIP, a.UserAgent, a.Timestamp))

	result, err := repo.ListByTransactionID(context.Background(), txnID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, a.EventType, result[0].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}
