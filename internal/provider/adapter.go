// Package provider implements the gateway's upstream provider adapters.
// Each adapter is constructed from a merchant's decrypted ProviderConfig
// and speaks that provider's wire format, normalising results to the
// gateway's own status vocabulary.
package provider

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"
)

// ErrRefundNotSupported is the sentinel an adapter's RefundPayment wraps
// when its upstream exposes no programmatic refund/reversal endpoint.
// Distinct from a transient RefundError so the payment service can map it
// to the spec's RefundUnsupported taxonomy entry (400) instead of treating
// it like an upstream failure (502).
var ErrRefundNotSupported = errors.New("refund not supported by this provider")

// InitResult is what InitPayment returns, normalised across providers.
type InitResult struct {
	ProviderTransactionID string
	Status                domain.TransactionStatus
	PaymentURL            string
	Raw                   map[string]any
}

// VerifyResult is what VerifyPayment returns.
type VerifyResult struct {
	Status domain.TransactionStatus
	Raw    map[string]any
}

// RefundResult is what RefundPayment returns.
type RefundResult struct {
	RefundID string
	Status   domain.TransactionStatus
	Raw      map[string]any
}

// WebhookResult is what HandleWebhook returns after parsing a provider's
// push payload into the gateway's vocabulary.
type WebhookResult struct {
	ProviderTransactionID string
	EventType             string
	Status                domain.TransactionStatus
	Raw                   map[string]any
}

// Customer is the subset of domain.Customer an adapter needs, plus any
// provider-specific fields passed through metadata (phone, msisdn, etc.).
type Customer struct {
	Phone string
	Email string
	Name  string
	Extra map[string]any
}

// Adapter is the capability every provider implements: initiate, verify,
// verify-webhook-signature, and handle-webhook. Refund is optional —
// adapters that don't support it return an error wrapping ErrRefundNotSupported.
type Adapter interface {
	Name() string
	InitPayment(ctx context.Context, amountCents int64, currency string, customer Customer, metadata map[string]any) (*InitResult, error)
	VerifyPayment(ctx context.Context, providerTransactionID string) (*VerifyResult, error)
	RefundPayment(ctx context.Context, providerTransactionID string, amountCents *int64, reason string) (*RefundResult, error)
	VerifyWebhookSignature(payload []byte, signature string) bool
	HandleWebhook(ctx context.Context, payload map[string]any) (*WebhookResult, error)
}

// Factory builds an Adapter from a merchant's decoded provider config.
type Factory func(config map[string]any) (Adapter, error)

// Registry is the closed set of short-name -> Factory bindings the gateway
// supports. Unknown short names are a configuration error, not a runtime one.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds the registry with every built-in adapter wired in.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("standardbankpay", NewStandardBankPay)
	r.Register("cpay", NewCPay)
	r.Register("mpesa", NewMPesa)
	return r
}

// Register binds a short name to a Factory. Exported so tests (or a future
// provider) can extend the registry without touching NewRegistry.
func (r *Registry) Register(shortName string, f Factory) {
	r.factories[shortName] = f
}

// Build constructs an Adapter for shortName using config.
func (r *Registry) Build(shortName string, config map[string]any) (Adapter, error) {
	f, ok := r.factories[shortName]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", shortName)
	}
	return f(config)
}

// Known reports whether shortName has a registered factory.
func (r *Registry) Known(shortName string) bool {
	_, ok := r.factories[shortName]
	return ok
}

func stringField(config map[string]any, key string) string {
	v, _ := config[key].(string)
	return v
}

func boolField(config map[string]any, key string, def bool) bool {
	v, ok := config[key].(bool)
	if !ok {
		return def
	}
	return v
}

// ExtractProviderTransactionID pulls the upstream reference out of a raw
// webhook payload using the same field paths each adapter's HandleWebhook
// uses, without needing a constructed Adapter. The webhook pipeline calls
// this to resolve which Transaction (and therefore which merchant) a push
// notification belongs to before it has enough information to build the
// merchant-scoped adapter HandleWebhook itself requires.
func ExtractProviderTransactionID(providerName string, payload map[string]any) string {
	switch providerName {
	case "standardbankpay":
		txnRef, _ := payload["sbp_txn_ref"].(string)
		return txnRef
	case "cpay":
		extTxID, _ := payload["extTransactionId"].(string)
		return extTxID
	case "mpesa":
		if body, ok := payload["Body"].(map[string]any); ok {
			if stk, ok := body["stkCallback"].(map[string]any); ok {
				checkoutID, _ := stk["CheckoutRequestID"].(string)
				return checkoutID
			}
		}
		if result, ok := payload["Result"].(map[string]any); ok {
			convID, _ := result["ConversationID"].(string)
			return convID
		}
		if txID, ok := payload["TransID"].(string); ok {
			return txID
		}
		txID, _ := payload["CheckoutRequestID"].(string)
		return txID
	default:
		return ""
	}
}
