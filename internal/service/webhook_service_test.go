package service

import (
	"context"
	"testing"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports/mocks"
	"payment-gateway-aggregator/internal/provider"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type webhookTestDeps struct {
	svc         *DefaultWebhookService
	webhookRepo *mocks.MockWebhookRepository
	txRepo      *mocks.MockTransactionRepository
	auditSvc    *mocks.MockAuditService
	transactor  *mocks.MockDBTransactor
	configSvc   *mocks.MockProviderConfigService
	dlq         *mocks.MockDeadLetterPublisher
	registry    *provider.Registry
	ctrl        *gomock.Controller
}

func setupWebhookService(t *testing.T) *webhookTestDeps {
	ctrl := gomock.NewController(t)
	d := &webhookTestDeps{
		webhookRepo: mocks.NewMockWebhookRepository(ctrl),
		txRepo:      mocks.NewMockTransactionRepository(ctrl),
		auditSvc:    mocks.NewMockAuditService(ctrl),
		transactor:  mocks.NewMockDBTransactor(ctrl),
		configSvc:   mocks.NewMockProviderConfigService(ctrl),
		dlq:         mocks.NewMockDeadLetterPublisher(ctrl),
		registry:    provider.NewRegistry(),
		ctrl:        ctrl,
	}
	d.svc = NewDefaultWebhookService(d.webhookRepo, d.txRepo, d.auditSvc, d.transactor, d.configSvc, d.registry, d.dlq)
	return d
}

func TestWebhookService_Receive_UnsignedAcceptsImmediately(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.webhookRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, e *domain.WebhookEvent) error {
			assert.True(t, e.Verified)
			return nil
		},
	)

	id, err := d.svc.Receive(ctx, "cpay", []byte(`{"event_type":"payment.completed"}`), nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestWebhookService_Process_AlreadyProcessedIsNoop(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	eventID := uuid.New()

	d.webhookRepo.EXPECT().GetByID(ctx, eventID).Return(&domain.WebhookEvent{ID: eventID, Processed: true}, nil)

	err := d.svc.Process(ctx, eventID)
	assert.NoError(t, err)
}

func TestWebhookService_Process_UnverifiedFails(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	eventID := uuid.New()
	event := &domain.WebhookEvent{ID: eventID, Verified: false, CreatedAt: time.Now().UTC()}

	d.webhookRepo.EXPECT().GetByID(ctx, eventID).Return(event, nil)
	d.webhookRepo.EXPECT().Update(ctx, event).Return(nil)

	err := d.svc.Process(ctx, eventID)
	require.Error(t, err)
	assert.Equal(t, 1, event.RetryCount)
}

func TestWebhookService_Process_Success(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := &mockTx{}
	eventID := uuid.New()
	merchantID := uuid.New()
	txnID := uuid.New()

	payload := []byte(`{"extTransactionId":"ptx_777","event_type":"payment.completed"}`)
	event := &domain.WebhookEvent{ID: eventID, Provider: "cpay", Payload: payload, Verified: true, CreatedAt: time.Now().UTC()}
	txn := &domain.Transaction{ID: txnID, MerchantID: merchantID, Provider: "cpay", Status: domain.TransactionStatusProcessing}
	locked := &domain.Transaction{ID: txnID, MerchantID: merchantID, Provider: "cpay", Status: domain.TransactionStatusProcessing}

	d.webhookRepo.EXPECT().GetByID(ctx, eventID).Return(event, nil)
	d.txRepo.EXPECT().GetByProviderTransactionID(ctx, "cpay", "ptx_777").Return(txn, nil)
	d.configSvc.EXPECT().Load(ctx, merchantID, "cpay").Return(activeConfig(), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByIDForUpdate(ctx, tx, txnID).Return(locked, nil)
	d.txRepo.EXPECT().Update(ctx, tx, gomock.Any()).Return(nil)
	d.auditSvc.EXPECT().Log(ctx, tx, gomock.Any()).Return(nil)
	d.webhookRepo.EXPECT().Update(ctx, event).Return(nil)

	// fakeAdapter.HandleWebhook returns (nil, nil) by default, so the
	// fixture wraps it to supply a concrete WebhookResult.
	d.registry.Register("cpay", func(config map[string]any) (provider.Adapter, error) {
		return &handlingFakeAdapter{
			fakeAdapter: fakeAdapter{name: "cpay"},
			webhookResult: &provider.WebhookResult{
				ProviderTransactionID: "ptx_777",
				Status:                domain.TransactionStatusCompleted,
				Raw:                   map[string]any{"status": "completed"},
			},
		}, nil
	})

	err := d.svc.Process(ctx, eventID)
	require.NoError(t, err)
	assert.True(t, event.Processed)
	require.NotNil(t, event.TransactionID)
	assert.Equal(t, txnID, *event.TransactionID)
}

// handlingFakeAdapter extends fakeAdapter with a configurable HandleWebhook
// result, since fakeAdapter itself always returns (nil, nil).
type handlingFakeAdapter struct {
	fakeAdapter
	webhookResult *provider.WebhookResult
	webhookErr    error
}

func (h *handlingFakeAdapter) HandleWebhook(ctx context.Context, payload map[string]any) (*provider.WebhookResult, error) {
	return h.webhookResult, h.webhookErr
}

func TestWebhookService_Process_UnresolvableTransactionFails(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	eventID := uuid.New()
	event := &domain.WebhookEvent{ID: eventID, Provider: "cpay", Payload: []byte(`{}`), Verified: true, CreatedAt: time.Now().UTC()}

	d.webhookRepo.EXPECT().GetByID(ctx, eventID).Return(event, nil)
	d.webhookRepo.EXPECT().Update(ctx, event).Return(nil)

	err := d.svc.Process(ctx, eventID)
	require.Error(t, err)
	assert.Equal(t, 1, event.RetryCount)
}

func TestWebhookService_Fail_DeadLettersAtRetryBudget(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	eventID := uuid.New()
	event := &domain.WebhookEvent{ID: eventID, Provider: "cpay", Verified: false, RetryCount: domain.MaxWebhookRetries - 1, CreatedAt: time.Now().UTC()}

	d.webhookRepo.EXPECT().GetByID(ctx, eventID).Return(event, nil)
	d.webhookRepo.EXPECT().Update(ctx, event).Return(nil)
	d.dlq.EXPECT().PublishDeadLettered(ctx, eventID, "cpay").Return(nil)

	err := d.svc.Process(ctx, eventID)
	require.Error(t, err)
	assert.True(t, event.DeadLettered())
}

func TestWebhookService_RetryDue_CountsSuccesses(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	now := time.Now().UTC()

	alreadyProcessed := domain.WebhookEvent{ID: uuid.New(), Processed: true}
	unresolvable := domain.WebhookEvent{ID: uuid.New(), Provider: "cpay", Payload: []byte(`{}`), Verified: true, CreatedAt: now}

	d.webhookRepo.EXPECT().ListRetryable(ctx, now).Return([]domain.WebhookEvent{alreadyProcessed, unresolvable}, nil)
	d.webhookRepo.EXPECT().GetByID(ctx, alreadyProcessed.ID).Return(&alreadyProcessed, nil)
	d.webhookRepo.EXPECT().GetByID(ctx, unresolvable.ID).Return(&unresolvable, nil)
	d.webhookRepo.EXPECT().Update(ctx, &unresolvable).Return(nil)

	succeeded, err := d.svc.RetryDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, succeeded)
}

func TestWebhookService_DeadLetterQueue(t *testing.T) {
	d := setupWebhookService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	want := []domain.WebhookEvent{{ID: uuid.New(), RetryCount: domain.MaxWebhookRetries}}
	d.webhookRepo.EXPECT().ListDeadLettered(ctx).Return(want, nil)

	got, err := d.svc.DeadLetterQueue(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
