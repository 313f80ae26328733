package service

import (
	"context"
	"testing"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuditService_Log_AssignsIDWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewDefaultAuditService(repo)
	ctx := context.Background()
	tx := &mockTx{}

	entry := &domain.AuditLog{TransactionID: uuid.New(), EventType: "payment.completed"}
	repo.EXPECT().Create(ctx, tx, entry).DoAndReturn(
		func(_ context.Context, _ interface{}, a *domain.AuditLog) error {
			assert.NotEqual(t, uuid.Nil, a.ID)
			return nil
		},
	)

	err := svc.Log(ctx, tx, entry)
	require.NoError(t, err)
}

func TestAuditService_Log_PreservesExistingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockAuditRepository(ctrl)
	svc := NewDefaultAuditService(repo)
	ctx := context.Background()

	id := uuid.New()
	entry := &domain.AuditLog{ID: id, TransactionID: uuid.New(), EventType: "refund.completed"}
	repo.EXPECT().Create(ctx, nil, entry).Return(nil)

	err := svc.Log(ctx, nil, entry)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
}
