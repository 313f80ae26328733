package provider

import (
	"context"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/go-resty/resty/v2"
)

var sbpStatusMap = map[string]domain.TransactionStatus{
	"AWAITING_CUSTOMER": domain.TransactionStatusPending,
	"SETTLED":           domain.TransactionStatusCompleted,
}

var sbpWebhookStatusMap = map[string]domain.TransactionStatus{
	"PAYMENT_SETTLED": domain.TransactionStatusCompleted,
}

func mapSBPStatus(table map[string]domain.TransactionStatus, raw string) domain.TransactionStatus {
	if s, ok := table[raw]; ok {
		return s
	}
	return domain.TransactionStatusPending
}

// StandardBankPay adapts the Standard Bank Pay redirect-to-approve API.
// It has no webhook signature of its own; authenticity relies on the
// payload's transaction reference being cross-checked against VerifyPayment.
type StandardBankPay struct {
	client   *resty.Client
	baseURL  string
	apiKey   string
	clientID string
}

// NewStandardBankPay builds a StandardBankPay adapter from config keys
// base_url, api_key, client_id.
func NewStandardBankPay(config map[string]any) (Adapter, error) {
	baseURL := stringField(config, "base_url")
	apiKey := stringField(config, "api_key")
	clientID := stringField(config, "client_id")
	if baseURL == "" || apiKey == "" || clientID == "" {
		return nil, fmt.Errorf("standardbankpay: base_url, api_key and client_id are required")
	}
	return &StandardBankPay{
		client:   resty.New().SetBaseURL(baseURL),
		baseURL:  baseURL,
		apiKey:   apiKey,
		clientID: clientID,
	}, nil
}

func (p *StandardBankPay) Name() string { return "standardbankpay" }

func (p *StandardBankPay) headers(requestID string) map[string]string {
	return map[string]string{
		"Authorization":     "Bearer " + p.apiKey,
		"X-SBP-Client-Id":   p.clientID,
		"X-SBP-Request-Id":  requestID,
		"Content-Type":      "application/json",
	}
}

func (p *StandardBankPay) InitPayment(ctx context.Context, amountCents int64, currency string, customer Customer, metadata map[string]any) (*InitResult, error) {
	requestID, _ := metadata["request_id"].(string)
	if requestID == "" {
		return nil, fmt.Errorf("missing request_id in metadata")
	}

	var out map[string]any
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(p.headers(requestID)).
		SetBody(map[string]any{
			"amount_cents": amountCents,
			"currency":     currency,
			"customer":     customer.Extra,
			"callback_url": metadata["callback_url"],
		}).
		SetResult(&out).
		Post("/api/v1/payments/initiate")
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s", resp.String())
	}

	status, _ := out["processing_state"].(string)
	txnRef, _ := out["sbp_txn_ref"].(string)
	paymentURL, _ := out["approval_url"].(string)

	return &InitResult{
		ProviderTransactionID: txnRef,
		Status:                mapSBPStatus(sbpStatusMap, status),
		PaymentURL:            paymentURL,
		Raw:                   out,
	}, nil
}

func (p *StandardBankPay) VerifyPayment(ctx context.Context, providerTransactionID string) (*VerifyResult, error) {
	var out map[string]any
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeaders(p.headers("verify-"+providerTransactionID)).
		SetResult(&out).
		Get(fmt.Sprintf("/api/v1/payments/%s/status", providerTransactionID))
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%s", resp.String())
	}

	status, _ := out["processing_state"].(string)
	return &VerifyResult{Status: mapSBPStatus(sbpStatusMap, status), Raw: out}, nil
}

// RefundPayment is not exposed by Standard Bank Pay's redirect-approve API.
func (p *StandardBankPay) RefundPayment(ctx context.Context, providerTransactionID string, amountCents *int64, reason string) (*RefundResult, error) {
	return nil, fmt.Errorf("standardbankpay: transaction %s: %w", providerTransactionID, ErrRefundNotSupported)
}

// VerifyWebhookSignature always succeeds: the gateway carries no signature.
func (p *StandardBankPay) VerifyWebhookSignature(payload []byte, signature string) bool {
	return true
}

func (p *StandardBankPay) HandleWebhook(ctx context.Context, payload map[string]any) (*WebhookResult, error) {
	txnRef, _ := payload["sbp_txn_ref"].(string)
	if txnRef == "" {
		return nil, fmt.Errorf("missing transaction reference")
	}
	eventType, _ := payload["event_type"].(string)

	return &WebhookResult{
		ProviderTransactionID: txnRef,
		EventType:             eventType,
		Status:                mapSBPStatus(sbpWebhookStatusMap, eventType),
		Raw:                   payload,
	}, nil
}
