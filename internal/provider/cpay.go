package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/go-resty/resty/v2"
)

const cpayDefaultBaseURL = "https://cpay-uat-env.chaperone.co.ls:5100"
const cpayDefaultCurrency = "LSL"

var cpayStatusMap = map[string]domain.TransactionStatus{
	"processed": domain.TransactionStatusCompleted,
	"open":      domain.TransactionStatusPending,
	"scheduled": domain.TransactionStatusPending,
	"denied":    domain.TransactionStatusFailed,
	"canceled":  domain.TransactionStatusFailed,
	"cancelled": domain.TransactionStatusFailed,
	"expired":   domain.TransactionStatusFailed,
	"reversed":  domain.TransactionStatusRefunded,
	"0000":      domain.TransactionStatusCompleted,
	"success":   domain.TransactionStatusCompleted,
}

func mapCPayStatus(raw string) domain.TransactionStatus {
	if raw == "" {
		return domain.TransactionStatusPending
	}
	if s, ok := cpayStatusMap[strings.ToLower(raw)]; ok {
		return s
	}
	return domain.TransactionStatusPending
}

// CPay adapts the Chaperone CPay API. It supports three initiation modes
// (async USSD push, OTP confirm, redirect-to-card), exposed through
// InitPayment's metadata["payment_mode"] plus the extra ConfirmOTP method
// for completing the OTP flow's second step.
type CPay struct {
	client      *resty.Client
	apiKey      string
	apiSecret   string
	clientCode  string
	baseURL     string
	redirectURL string
}

// NewCPay builds a CPay adapter from config keys api_key, api_secret,
// client_code, base_url (optional), redirect_url (optional).
func NewCPay(config map[string]any) (Adapter, error) {
	apiKey := stringField(config, "api_key")
	apiSecret := stringField(config, "api_secret")
	clientCode := stringField(config, "client_code")
	if apiKey == "" || apiSecret == "" || clientCode == "" {
		return nil, fmt.Errorf("cpay: api_key, api_secret and client_code are required")
	}
	baseURL := stringField(config, "base_url")
	if baseURL == "" {
		baseURL = cpayDefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Authorization", apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &CPay{
		client:      client,
		apiKey:      apiKey,
		apiSecret:   apiSecret,
		clientCode:  clientCode,
		baseURL:     strings.TrimRight(baseURL, "/"),
		redirectURL: stringField(config, "redirect_url"),
	}, nil
}

func (p *CPay) Name() string { return "cpay" }

func (p *CPay) checksum(extTransactionID, amount, msisdn, otp string) string {
	salt := extTransactionID + p.clientCode + amount + msisdn + otp
	mac := hmac.New(sha256.New, []byte(p.apiSecret))
	mac.Write([]byte(salt))
	return hex.EncodeToString(mac.Sum(nil))
}

func (p *CPay) InitPayment(ctx context.Context, amountCents int64, currency string, customer Customer, metadata map[string]any) (*InitResult, error) {
	mode, _ := metadata["payment_mode"].(string)
	if mode == "" {
		mode = "async"
	}
	mode = strings.ToLower(mode)

	msisdn := customer.Phone
	extTxID, _ := metadata["ext_transaction_id"].(string)
	if msisdn == "" {
		return nil, fmt.Errorf("'phone' (msisdn) is required")
	}
	if extTxID == "" {
		return nil, fmt.Errorf("'ext_transaction_id' is required in metadata")
	}
	if currency == "" {
		currency = cpayDefaultCurrency
	}

	amount := domain.FormatAmountCents(amountCents)
	txRequest := map[string]any{
		"extTransactionId": extTxID,
		"clientCode":       p.clientCode,
		"msisdn":           msisdn,
		"otp":              "",
		"amount":           amount,
		"shortDescription": stringOrDefault(metadata, "short_description", ""),
		"checksum":         p.checksum(extTxID, amount, msisdn, ""),
		"currency":         currency,
		"otpMedium":        stringOrDefault(metadata, "otp_medium", "sms"),
		"additionalData":   stringOrDefault(metadata, "additional_data", ""),
		"redirectUrl":      p.redirectURL,
	}
	payload := map[string]any{"transactionRequest": txRequest}

	switch mode {
	case "async":
		return p.initiateAsync(ctx, extTxID, payload)
	case "otp":
		return p.initiateOTP(ctx, extTxID, payload)
	case "card":
		return p.initiateCard(ctx, extTxID, payload, customer)
	default:
		return nil, fmt.Errorf("unknown payment_mode %q: use 'async', 'otp' or 'card'", mode)
	}
}

func stringOrDefault(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func (p *CPay) initiateAsync(ctx context.Context, extTxID string, payload map[string]any) (*InitResult, error) {
	var out map[string]any
	resp, err := p.client.R().SetContext(ctx).SetBody(payload).SetResult(&out).
		Post("/api/cpaypayments/paymentrequest/async/transactions")
	if err != nil {
		return nil, fmt.Errorf("network error during async payment init: %w", err)
	}
	if err := p.checkResponse(resp, out); err != nil {
		return nil, err
	}
	txID, _ := out["extTransactionId"].(string)
	if txID == "" {
		txID = extTxID
	}
	status, _ := out["paymentRequestStatus"].(string)
	return &InitResult{ProviderTransactionID: txID, Status: mapCPayStatus(status), Raw: out}, nil
}

func (p *CPay) initiateOTP(ctx context.Context, extTxID string, payload map[string]any) (*InitResult, error) {
	var out map[string]any
	resp, err := p.client.R().SetContext(ctx).SetBody(payload).SetResult(&out).
		Post("/api/cpaypayments/payment")
	if err != nil {
		return nil, fmt.Errorf("network error during OTP payment init: %w", err)
	}
	if err := p.checkResponse(resp, out); err != nil {
		return nil, err
	}
	txID, _ := out["extTransactionId"].(string)
	if txID == "" {
		txID = extTxID
	}
	return &InitResult{ProviderTransactionID: txID, Status: domain.TransactionStatusPending, Raw: out}, nil
}

func (p *CPay) initiateCard(ctx context.Context, extTxID string, payload map[string]any, customer Customer) (*InitResult, error) {
	req := p.client.R().SetContext(ctx).SetBody(payload).SetQueryParam("cardPayment", "true")
	if customer.Email != "" {
		req.SetQueryParam("email", customer.Email)
	}
	resp, err := req.Post("/api/cpaypayments/payment")
	if err != nil {
		return nil, fmt.Errorf("network error during card payment init: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("card payment init failed (HTTP %d): %s", resp.StatusCode(), truncate(resp.String(), 500))
	}

	paymentURL := strings.TrimSpace(resp.String())
	return &InitResult{
		ProviderTransactionID: extTxID,
		Status:                domain.TransactionStatusPending,
		PaymentURL:            paymentURL,
		Raw:                   map[string]any{"raw_response": resp.String()},
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (p *CPay) checkResponse(resp *resty.Response, out map[string]any) error {
	if resp.StatusCode() == 200 || resp.StatusCode() == 201 {
		return nil
	}
	errMsg, _ := out["description"].(string)
	if errMsg == "" {
		errMsg = truncate(resp.String(), 300)
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode(), errMsg)
}

func (p *CPay) VerifyPayment(ctx context.Context, providerTransactionID string) (*VerifyResult, error) {
	var out map[string]any
	resp, err := p.client.R().SetContext(ctx).
		SetQueryParam("requestReference", providerTransactionID).
		SetResult(&out).
		Get("/api/cpaypayments/transaction-status")
	if err != nil {
		return nil, fmt.Errorf("network error during verify_payment: %w", err)
	}
	if err := p.checkResponse(resp, out); err != nil {
		return nil, err
	}
	status, _ := out["paymentRequestStatus"].(string)
	if status == "" {
		status, _ = out["statusCode"].(string)
	}
	return &VerifyResult{Status: mapCPayStatus(status), Raw: out}, nil
}

// RefundPayment is not exposed by CPay v1.1's public API.
func (p *CPay) RefundPayment(ctx context.Context, providerTransactionID string, amountCents *int64, reason string) (*RefundResult, error) {
	return nil, fmt.Errorf("cpay: transaction %s must be reversed via the merchant portal: %w", providerTransactionID, ErrRefundNotSupported)
}

// ConfirmOTP completes step two of the OTP payment flow.
func (p *CPay) ConfirmOTP(ctx context.Context, extTransactionID, otp string, amountCents int64, msisdn, currency string) (*InitResult, error) {
	if currency == "" {
		currency = cpayDefaultCurrency
	}
	amount := domain.FormatAmountCents(amountCents)
	payload := map[string]any{
		"transactionRequest": map[string]any{
			"extTransactionId": extTransactionID,
			"clientCode":       p.clientCode,
			"msisdn":           msisdn,
			"otp":              otp,
			"amount":           amount,
			"shortDescription": "",
			"checksum":         p.checksum(extTransactionID, amount, msisdn, otp),
			"currency":         currency,
			"otpMedium":        "sms",
			"additionalData":   "",
			"redirectUrl":      p.redirectURL,
		},
	}

	var out map[string]any
	resp, err := p.client.R().SetContext(ctx).SetBody(payload).SetResult(&out).
		Post("/api/cpaypayments/confirm")
	if err != nil {
		return nil, fmt.Errorf("network error during confirm_otp_payment: %w", err)
	}
	if err := p.checkResponse(resp, out); err != nil {
		return nil, err
	}

	txID, _ := out["extTransactionId"].(string)
	if txID == "" {
		txID = extTransactionID
	}
	status, _ := out["paymentRequestStatus"].(string)
	return &InitResult{ProviderTransactionID: txID, Status: mapCPayStatus(status), Raw: out}, nil
}

// VerifyWebhookSignature: CPay push notifications carry no signature
// header. Authenticity relies on cross-checking the payload's
// extTransactionId against VerifyPayment.
func (p *CPay) VerifyWebhookSignature(payload []byte, signature string) bool {
	return true
}

func (p *CPay) HandleWebhook(ctx context.Context, payload map[string]any) (*WebhookResult, error) {
	status, _ := payload["paymentRequestStatus"].(string)
	if status == "" {
		status, _ = payload["statusCode"].(string)
	}
	internalStatus := mapCPayStatus(status)
	extTxID, _ := payload["extTransactionId"].(string)

	var eventType string
	switch internalStatus {
	case domain.TransactionStatusCompleted:
		eventType = "payment.completed"
	case domain.TransactionStatusRefunded:
		eventType = "payment.reversed"
	case domain.TransactionStatusFailed:
		reasonCode, _ := payload["reasonCode"].(string)
		switch strings.ToLower(reasonCode) {
		case "canceled", "cancelled":
			eventType = "payment.cancelled"
		case "expired":
			eventType = "payment.expired"
		default:
			eventType = "payment.failed"
		}
	default:
		eventType = "payment.pending"
	}

	return &WebhookResult{
		ProviderTransactionID: extTxID,
		EventType:             eventType,
		Status:                internalStatus,
		Raw:                   payload,
	}, nil
}
