package service

import (
	"context"
	"encoding/json"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/internal/provider"
	"payment-gateway-aggregator/pkg/apperror"

	"github.com/google/uuid"
)

// DefaultWebhookService implements ports.WebhookService (C6): ingest,
// verify, apply-to-transaction, retry, and dead-letter.
//
// Signature verification needs a merchant-scoped adapter (each provider's
// check is keyed on that merchant's shared secret), but the inbound
// webhook carries no merchant identifier — only the provider short name
// and the upstream's own reference id buried in the payload. Receive
// therefore applies the gateway's unsigned-accept policy immediately
// (verified=true when no signature/raw bytes were supplied) and otherwise
// defers the actual cryptographic check to Process, which first resolves
// the owning Transaction (and so its merchant) via
// provider.ExtractProviderTransactionID, then builds that merchant's
// adapter to verify the signature and parse the payload.
type DefaultWebhookService struct {
	webhookRepo ports.WebhookRepository
	txRepo      ports.TransactionRepository
	auditSvc    ports.AuditService
	transactor  ports.DBTransactor
	configSvc   ports.ProviderConfigService
	registry    *provider.Registry
	dlq         ports.DeadLetterPublisher
}

// NewDefaultWebhookService creates a new webhook service.
func NewDefaultWebhookService(
	webhookRepo ports.WebhookRepository,
	txRepo ports.TransactionRepository,
	auditSvc ports.AuditService,
	transactor ports.DBTransactor,
	configSvc ports.ProviderConfigService,
	registry *provider.Registry,
	dlq ports.DeadLetterPublisher,
) *DefaultWebhookService {
	return &DefaultWebhookService{
		webhookRepo: webhookRepo,
		txRepo:      txRepo,
		auditSvc:    auditSvc,
		transactor:  transactor,
		configSvc:   configSvc,
		registry:    registry,
		dlq:         dlq,
	}
}

// Receive persists an inbound push notification. verified is set
// immediately under the unsigned-accept policy; a present signature is
// only checked, deferred, when Process later resolves the merchant.
func (s *DefaultWebhookService) Receive(ctx context.Context, providerName string, payload []byte, signature *string, rawBytes []byte) (uuid.UUID, error) {
	event := &domain.WebhookEvent{
		ID:        uuid.New(),
		Provider:  providerName,
		Payload:   payload,
		Signature: signature,
		Verified:  signature == nil || rawBytes == nil,
		Processed: false,
		CreatedAt: time.Now().UTC(),
	}

	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err == nil {
		if eventType, ok := parsed["event_type"].(string); ok {
			event.EventType = eventType
		} else if eventType, ok := parsed["event"].(string); ok {
			event.EventType = eventType
		}
	}

	if err := s.webhookRepo.Create(ctx, event); err != nil {
		return uuid.Nil, apperror.ErrDatabaseError(err)
	}
	return event.ID, nil
}

// Process applies a received event to its Transaction. It is idempotent:
// an already-processed event returns success without side effect.
func (s *DefaultWebhookService) Process(ctx context.Context, eventID uuid.UUID) error {
	event, err := s.webhookRepo.GetByID(ctx, eventID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if event == nil {
		return apperror.ErrNotFound("webhook event")
	}
	if event.Processed {
		return nil
	}

	if !event.Verified && event.Signature == nil {
		return s.fail(ctx, event, "Webhook signature not verified")
	}

	var payload map[string]any
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return s.fail(ctx, event, "malformed webhook payload: "+err.Error())
	}

	providerTxID := provider.ExtractProviderTransactionID(event.Provider, payload)
	if providerTxID == "" {
		return s.fail(ctx, event, "could not resolve provider transaction id from payload")
	}

	txn, err := s.txRepo.GetByProviderTransactionID(ctx, event.Provider, providerTxID)
	if err != nil {
		return s.fail(ctx, event, err.Error())
	}
	if txn == nil {
		return s.fail(ctx, event, "transaction not found for provider_transaction_id "+providerTxID)
	}

	adapter, err := s.buildAdapter(ctx, txn.MerchantID, event.Provider)
	if err != nil {
		return s.fail(ctx, event, err.Error())
	}

	if event.Signature != nil {
		if !adapter.VerifyWebhookSignature(event.Payload, *event.Signature) {
			event.Verified = false
			return s.fail(ctx, event, "Webhook signature not verified")
		}
	}

	result, err := adapter.HandleWebhook(ctx, payload)
	if err != nil {
		return s.fail(ctx, event, err.Error())
	}

	if err := s.applyToTransaction(ctx, txn, event, result); err != nil {
		return s.fail(ctx, event, err.Error())
	}

	now := time.Now().UTC()
	event.TransactionID = &txn.ID
	event.Verified = true
	event.Processed = true
	event.ProcessedAt = &now
	event.ErrorMessage = nil
	if err := s.webhookRepo.Update(ctx, event); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

// applyToTransaction advances txn through the legal-transition table
// under the transaction's row lock and writes one audit event, per §5's
// ordering guarantee.
func (s *DefaultWebhookService) applyToTransaction(ctx context.Context, txn *domain.Transaction, event *domain.WebhookEvent, result *provider.WebhookResult) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	locked, err := s.txRepo.GetByIDForUpdate(ctx, tx, txn.ID)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if locked == nil {
		return apperror.ErrNotFound("transaction")
	}

	oldStatus := locked.Status
	if domain.CanTransition(oldStatus, result.Status) {
		locked.Status = result.Status
		if result.Status == domain.TransactionStatusCompleted {
			now := time.Now().UTC()
			locked.CompletedAt = &now
		}
	}

	var existing map[string]any
	_ = json.Unmarshal(locked.ProviderResponse, &existing)
	if existing == nil {
		existing = map[string]any{}
	}
	existing["webhook_data"] = result.Raw
	locked.ProviderResponse, _ = json.Marshal(existing)
	locked.UpdatedAt = time.Now().UTC()

	if err := s.txRepo.Update(ctx, tx, locked); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	eventType := result.EventType
	if eventType == "" {
		eventType = "webhook." + string(locked.Status)
	}
	data, _ := json.Marshal(map[string]any{
		"old_status":      oldStatus,
		"new_status":      locked.Status,
		"webhook_event_id": event.ID,
	})
	if err := s.auditSvc.Log(ctx, tx, &domain.AuditLog{
		ID:            uuid.New(),
		TransactionID: locked.ID,
		EventType:     eventType,
		EventData:     data,
		Timestamp:     time.Now().UTC(),
	}); err != nil {
		return apperror.ErrDatabaseError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	*txn = *locked
	return nil
}

func (s *DefaultWebhookService) buildAdapter(ctx context.Context, merchantID uuid.UUID, providerName string) (provider.Adapter, error) {
	if !s.registry.Known(providerName) {
		return nil, apperror.ErrProviderUnknown(providerName)
	}
	cfg, err := s.configSvc.Load(ctx, merchantID, providerName)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if cfg == nil || !cfg.IsActive {
		return nil, apperror.ErrProviderNotConfigured(providerName)
	}
	var configMap map[string]any
	if err := json.Unmarshal(cfg.Config, &configMap); err != nil {
		return nil, apperror.InternalError(err)
	}
	return s.registry.Build(providerName, configMap)
}

// fail records a failed processing attempt: retry_count increments and
// error_message is set. It crosses into the dead-letter set the instant
// retry_count reaches MaxWebhookRetries, at which point it is published
// (best-effort) onto the AMQP side channel for operator visibility.
func (s *DefaultWebhookService) fail(ctx context.Context, event *domain.WebhookEvent, message string) error {
	event.RetryCount++
	event.ErrorMessage = &message
	if err := s.webhookRepo.Update(ctx, event); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if event.DeadLettered() && s.dlq != nil {
		_ = s.dlq.PublishDeadLettered(ctx, event.ID, event.Provider)
	}
	return apperror.ErrWebhookVerification(message)
}

// RetryDue scans for unprocessed events whose retry schedule has elapsed
// and reprocesses them, returning the count that succeeded.
func (s *DefaultWebhookService) RetryDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.webhookRepo.ListRetryable(ctx, now)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	succeeded := 0
	for i := range due {
		if err := s.Process(ctx, due[i].ID); err == nil {
			succeeded++
		}
	}
	return succeeded, nil
}

// DeadLetterQueue returns events that exhausted their retry budget.
func (s *DefaultWebhookService) DeadLetterQueue(ctx context.Context) ([]domain.WebhookEvent, error) {
	events, err := s.webhookRepo.ListDeadLettered(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return events, nil
}
