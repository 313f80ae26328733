package ports

import (
	"context"
	"time"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EncryptionService handles AES-256-GCM encryption/decryption of opaque
// secrets at rest (ProviderConfig credentials). Distinct from
// APIKeyEnvelopeService: different key material, different consumer (C2).
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// APIKeyEnvelope is the AES-256-GCM envelope C1's aes_gcm_seal produces.
type APIKeyEnvelope struct {
	CiphertextB64 string `json:"data"`
	IVB64         string `json:"iv"`
	Alg           string `json:"alg"`
}

// APIKeyEnvelopeService implements aes_gcm_seal / aes_gcm_open, keyed on
// caller-supplied material right-padded or truncated to 32 bytes (C1).
type APIKeyEnvelopeService interface {
	Seal(keyMaterial string, plaintext string) (APIKeyEnvelope, error)
	Open(keyMaterial string, env APIKeyEnvelope) (string, error)
}

// SignatureService implements hmac_sha256 (C1). The provider adapters
// compute their request checksums and webhook signatures with crypto/hmac
// directly and do not call it.
type SignatureService interface {
	Sign(secret string, message string) string
	Verify(secret string, message string, signature string) bool
}

// HashService implements sha256_hex / hash_password (C1). The gateway's
// source of truth uses unsalted SHA-256; see DESIGN.md for why this
// implementation follows that contract literally.
type HashService interface {
	HashPassword(password string) string
	VerifyPassword(password string, digest string) bool
}

// APIKeyGenerator implements random_api_key(prefix) (C1).
type APIKeyGenerator interface {
	Generate(prefix string) (string, error)
}

// IdempotencyCache is C4: the Redis-backed fast-path response cache.
type IdempotencyCache interface {
	Get(ctx context.Context, key string) (*domain.IdempotencyRecord, error)
	Set(ctx context.Context, key string, record *domain.IdempotencyRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PaymentService is C5: the transaction store & state machine.
type PaymentService interface {
	Initialize(ctx context.Context, req InitializeRequest) (*domain.Transaction, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	List(ctx context.Context, params TransactionListParams) (*TransactionListResult, error)
	Verify(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	Refund(ctx context.Context, id uuid.UUID, amountCents *int64, reason string) (*domain.Transaction, error)
	// Reconcile sweeps every pending/processing transaction, calling Verify
	// on each so upstream state changes missed by a dropped webhook or an
	// un-retried verification still converge (§8 scenario 6).
	Reconcile(ctx context.Context, limit int) (*ReconcileResult, error)
}

// ReconcileResult summarises a Reconcile sweep.
type ReconcileResult struct {
	TotalPending int                `json:"total_pending"`
	Reconciled   int                `json:"reconciled"`
	Errors       []ReconcileError   `json:"errors"`
}

// ReconcileError records a single transaction's verify failure during a sweep.
type ReconcileError struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	Error         string    `json:"error"`
}

// InitializeRequest holds validated input for C5.Initialize.
type InitializeRequest struct {
	MerchantID     uuid.UUID
	Provider       string
	AmountCents    int64
	Currency       string
	Customer       domain.Customer
	Metadata       []byte
	IdempotencyKey string
}

// WebhookService is C6: ingest, process, retry, dead-letter.
type WebhookService interface {
	Receive(ctx context.Context, provider string, payload []byte, signature *string, rawBytes []byte) (uuid.UUID, error)
	Process(ctx context.Context, eventID uuid.UUID) error
	RetryDue(ctx context.Context, now time.Time) (int, error)
	DeadLetterQueue(ctx context.Context) ([]domain.WebhookEvent, error)
}

// AuthService is C7: signup / login / require_api_key.
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthEnvelope, error)
	Login(ctx context.Context, username, password string) (*AuthEnvelope, error)
	RequireAPIKey(ctx context.Context, apiKey string) (*domain.Account, error)
}

// SignupRequest holds input for merchant+account creation.
type SignupRequest struct {
	Username         string
	Password         string
	MerchantName     string
	Email            string
	Phone            string
	BusinessName     string
	BusinessCategory string
}

// AuthEnvelope is the sealed-API-key response returned by Signup and
// Login alike.
type AuthEnvelope struct {
	MerchantID uuid.UUID
	AccountID  uuid.UUID
	APIKey     APIKeyEnvelope
}

// ProviderConfigService is C2: per-merchant provider activation/lookup.
type ProviderConfigService interface {
	Load(ctx context.Context, merchantID uuid.UUID, providerShortName string) (*domain.ProviderConfig, error)
	Upsert(ctx context.Context, merchantID uuid.UUID, providerShortName string, config map[string]any, isActive bool) error
}

// AuditService records AuditLog rows (used inline by C5/C6, within the
// same DB transaction as the state change, and standalone by C5 for
// events with no state change). tx may be nil for a standalone write.
type AuditService interface {
	Log(ctx context.Context, tx pgx.Tx, entry *domain.AuditLog) error
}
