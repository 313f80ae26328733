package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/internal/provider"
	"payment-gateway-aggregator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultPaymentService implements ports.PaymentService (C5): the
// transaction store and provider-dispatch state machine. Each state
// transition and its audit-log entry commit together in one DBTransactor
// transaction.
type DefaultPaymentService struct {
	txRepo      ports.TransactionRepository
	auditSvc    ports.AuditService
	transactor  ports.DBTransactor
	configSvc   ports.ProviderConfigService
	registry    *provider.Registry
}

// NewDefaultPaymentService creates a new payment service.
func NewDefaultPaymentService(
	txRepo ports.TransactionRepository,
	auditSvc ports.AuditService,
	transactor ports.DBTransactor,
	configSvc ports.ProviderConfigService,
	registry *provider.Registry,
) *DefaultPaymentService {
	return &DefaultPaymentService{
		txRepo:     txRepo,
		auditSvc:   auditSvc,
		transactor: transactor,
		configSvc:  configSvc,
		registry:   registry,
	}
}

func (s *DefaultPaymentService) buildAdapter(ctx context.Context, merchantID uuid.UUID, providerName string) (provider.Adapter, error) {
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
		return nil, apperror.InternalError(fmt.Errorf("decoding provider config: %w", err))
	}

	adapter, err := s.registry.Build(providerName, configMap)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	return adapter, nil
}

// Initialize creates a Transaction and dispatches it to the configured
// provider. A repeat call with the same idempotency key replays the
// existing transaction rather than re-initiating it with the provider.
func (s *DefaultPaymentService) Initialize(ctx context.Context, req ports.InitializeRequest) (*domain.Transaction, error) {
	if req.IdempotencyKey != "" {
		existing, err := s.txRepo.GetByIdempotencyKey(ctx, req.MerchantID, req.IdempotencyKey)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if existing != nil {
			return existing, nil
		}
	}
	if req.AmountCents <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	idempotencyKey := req.IdempotencyKey
	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:             uuid.New(),
		IdempotencyKey: idempotencyKey,
		MerchantID:     req.MerchantID,
		Provider:       req.Provider,
		AmountCents:    req.AmountCents,
		Currency:       req.Currency,
		Status:         domain.TransactionStatusPending,
		Customer:       req.Customer,
		PaymentMethod:  req.Provider,
		Metadata:       req.Metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.createWithAudit(ctx, txn, domain.EventPaymentInitiated, map[string]any{
		"provider": req.Provider,
		"amount":   txn.Amount(),
		"currency": req.Currency,
	}); err != nil {
		return nil, err
	}

	adapter, err := s.buildAdapter(ctx, req.MerchantID, req.Provider)
	if err != nil {
		s.markFailed(ctx, txn, err)
		return nil, err
	}

	customer := provider.Customer{Phone: req.Customer.Phone, Email: req.Customer.Email, Name: req.Customer.Name}
	var metadata map[string]any
	if len(req.Metadata) > 0 {
		_ = json.Unmarshal(req.Metadata, &metadata)
	}

	result, err := adapter.InitPayment(ctx, req.AmountCents, req.Currency, customer, metadata)
	if err != nil {
		wrapped := apperror.ErrPaymentInitialization(req.Provider, err)
		s.markFailed(ctx, txn, wrapped)
		return nil, wrapped
	}

	providerTxID := result.ProviderTransactionID
	txn.ProviderTransactionID = &providerTxID
	txn.ProviderResponse, _ = json.Marshal(result.Raw)
	txn.Status = domain.TransactionStatusProcessing
	txn.UpdatedAt = time.Now().UTC()

	if err := s.updateWithAudit(ctx, txn, domain.EventPaymentProcessing, map[string]any{
		"provider_transaction_id": providerTxID,
	}); err != nil {
		return nil, err
	}

	return txn, nil
}

func (s *DefaultPaymentService) markFailed(ctx context.Context, txn *domain.Transaction, cause error) {
	txn.Status = domain.TransactionStatusFailed
	txn.ProviderResponse, _ = json.Marshal(map[string]any{"error": cause.Error()})
	txn.UpdatedAt = time.Now().UTC()
	_ = s.updateWithAudit(ctx, txn, domain.EventPaymentFailed, map[string]any{"error": cause.Error()})
}

func (s *DefaultPaymentService) createWithAudit(ctx context.Context, txn *domain.Transaction, eventType string, eventData map[string]any) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.txRepo.Create(ctx, tx, txn); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if err := s.writeAudit(ctx, tx, txn.ID, eventType, eventData); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

func (s *DefaultPaymentService) updateWithAudit(ctx context.Context, txn *domain.Transaction, eventType string, eventData map[string]any) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.txRepo.Update(ctx, tx, txn); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if err := s.writeAudit(ctx, tx, txn.ID, eventType, eventData); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

func (s *DefaultPaymentService) writeAudit(ctx context.Context, tx pgx.Tx, transactionID uuid.UUID, eventType string, eventData map[string]any) error {
	data, _ := json.Marshal(eventData)
	entry := &domain.AuditLog{
		TransactionID: transactionID,
		EventType:     eventType,
		EventData:     data,
		Timestamp:     time.Now().UTC(),
	}
	if err := s.auditSvc.Log(ctx, tx, entry); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	return nil
}

func (s *DefaultPaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

func (s *DefaultPaymentService) List(ctx context.Context, params ports.TransactionListParams) (*ports.TransactionListResult, error) {
	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	params.Page, params.PageSize = page, pageSize

	items, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &ports.TransactionListResult{
		Items:   items,
		Page:    page,
		PerPage: pageSize,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}, nil
}

// Verify re-polls the provider for the transaction's current status.
// Completed and refunded transactions are terminal and returned as-is.
func (s *DefaultPaymentService) Verify(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if txn.Status.IsTerminal() {
		return txn, nil
	}

	adapter, err := s.buildAdapter(ctx, txn.MerchantID, txn.Provider)
	if err != nil {
		return nil, err
	}
	if txn.ProviderTransactionID == nil {
		return nil, apperror.ErrInvariantViolation("transaction has no provider_transaction_id to verify")
	}

	result, err := adapter.VerifyPayment(ctx, *txn.ProviderTransactionID)
	if err != nil {
		wrapped := apperror.ErrPaymentVerification(txn.Provider, err)
		_ = s.writeStandaloneAudit(ctx, txn.ID, domain.EventPaymentVerificationFailed, map[string]any{"error": err.Error()})
		return nil, wrapped
	}

	oldStatus := txn.Status
	if domain.CanTransition(oldStatus, result.Status) {
		txn.Status = result.Status
		if result.Status == domain.TransactionStatusCompleted {
			now := time.Now().UTC()
			txn.CompletedAt = &now
		}
	}
	txn.ProviderResponse, _ = json.Marshal(result.Raw)
	txn.UpdatedAt = time.Now().UTC()

	if oldStatus != txn.Status {
		if err := s.updateWithAudit(ctx, txn, "payment."+string(txn.Status), map[string]any{
			"old_status": oldStatus,
			"new_status": txn.Status,
		}); err != nil {
			return nil, err
		}
	} else {
		tx, err := s.transactor.Begin(ctx)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		defer tx.Rollback(ctx)
		if err := s.txRepo.Update(ctx, tx, txn); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	return txn, nil
}

// Refund reverses a completed transaction through the provider. Only
// completed transactions are refund-eligible; providers without a refund
// capability surface apperror.ErrRefundUnsupportedRef.
func (s *DefaultPaymentService) Refund(ctx context.Context, id uuid.UUID, amountCents *int64, reason string) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if txn.Status != domain.TransactionStatusCompleted {
		return nil, apperror.ErrInvalidRefund()
	}
	if amountCents != nil && *amountCents > txn.AmountCents {
		return nil, apperror.ErrRefundAmountExceedsOriginal()
	}

	_ = s.writeStandaloneAudit(ctx, txn.ID, domain.EventRefundInitiated, map[string]any{
		"amount": amountCents,
		"reason": reason,
	})

	adapter, err := s.buildAdapter(ctx, txn.MerchantID, txn.Provider)
	if err != nil {
		return nil, err
	}
	if txn.ProviderTransactionID == nil {
		return nil, apperror.ErrInvariantViolation("transaction has no provider_transaction_id to refund")
	}

	result, err := adapter.RefundPayment(ctx, *txn.ProviderTransactionID, amountCents, reason)
	if err != nil {
		_ = s.writeStandaloneAudit(ctx, txn.ID, "refund.failed", map[string]any{"error": err.Error()})
		if errors.Is(err, provider.ErrRefundNotSupported) {
			return nil, apperror.ErrRefundUnsupportedRef(txn.Provider, *txn.ProviderTransactionID)
		}
		return nil, apperror.ErrRefund(txn.Provider, err)
	}

	var existing map[string]any
	_ = json.Unmarshal(txn.ProviderResponse, &existing)
	if existing == nil {
		existing = map[string]any{}
	}
	existing["refund"] = result.Raw
	txn.ProviderResponse, _ = json.Marshal(existing)
	txn.UpdatedAt = time.Now().UTC()

	// Some providers (e.g. mpesa's TransactionReversal) resolve a refund
	// asynchronously and report it back pending; only a provider that
	// confirms the refund synchronously earns the COMPLETED -> REFUNDED
	// transition here. The async case is left COMPLETED, with the
	// provider's pending reversal recorded in provider_response, until a
	// webhook later resolves it (§9's refund-pending race).
	eventType := domain.EventRefundPending
	if result.Status == domain.TransactionStatusRefunded && domain.CanTransition(txn.Status, domain.TransactionStatusRefunded) {
		txn.Status = domain.TransactionStatusRefunded
		eventType = domain.EventRefundCompleted
	}

	if err := s.updateWithAudit(ctx, txn, eventType, result.Raw); err != nil {
		return nil, err
	}
	return txn, nil
}

// Reconcile pages through every pending/processing transaction and calls
// Verify on each, converging any upstream state change a dropped webhook
// or an un-retried verification missed. A per-transaction Verify failure
// is recorded in the result and does not abort the sweep.
func (s *DefaultPaymentService) Reconcile(ctx context.Context, limit int) (*ports.ReconcileResult, error) {
	if limit <= 0 {
		limit = 100
	}

	result := &ports.ReconcileResult{Errors: []ports.ReconcileError{}}
	offset := 0
	for {
		batch, err := s.txRepo.ListPendingOrProcessing(ctx, limit, offset)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if len(batch) == 0 {
			break
		}

		for _, txn := range batch {
			result.TotalPending++
			if _, err := s.Verify(ctx, txn.ID); err != nil {
				result.Errors = append(result.Errors, ports.ReconcileError{
					TransactionID: txn.ID,
					Error:         err.Error(),
				})
				continue
			}
			result.Reconciled++
		}

		if len(batch) < limit {
			break
		}
		offset += limit
	}

	return result, nil
}

func (s *DefaultPaymentService) writeStandaloneAudit(ctx context.Context, transactionID uuid.UUID, eventType string, eventData map[string]any) error {
	data, _ := json.Marshal(eventData)
	return s.auditSvc.Log(ctx, nil, &domain.AuditLog{
		TransactionID: transactionID,
		EventType:     eventType,
		EventData:     data,
		Timestamp:     time.Now().UTC(),
	})
}
