package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/go-resty/resty/v2"
	gocache "github.com/patrickmn/go-cache"
)

var mpesaBaseURLs = map[string]string{
	"sandbox":    "https://sandbox.safaricom.co.ke",
	"production": "https://api.safaricom.co.ke",
}

var mpesaResultCodeMap = map[string]domain.TransactionStatus{
	"0":    domain.TransactionStatusCompleted,
	"1":    domain.TransactionStatusFailed,
	"17":   domain.TransactionStatusFailed,
	"20":   domain.TransactionStatusFailed,
	"26":   domain.TransactionStatusFailed,
	"32":   domain.TransactionStatusFailed,
	"1032": domain.TransactionStatusFailed,
	"1037": domain.TransactionStatusFailed,
	"2001": domain.TransactionStatusFailed,
}

var mpesaSTKStatusMap = map[string]domain.TransactionStatus{
	"0":    domain.TransactionStatusCompleted,
	"1":    domain.TransactionStatusPending,
	"1032": domain.TransactionStatusFailed,
	"1037": domain.TransactionStatusFailed,
}

func mapMPesaResultCode(code string) domain.TransactionStatus {
	if s, ok := mpesaResultCodeMap[code]; ok {
		return s
	}
	return domain.TransactionStatusPending
}

const mpesaTokenCacheKey = "access_token"

// MPesa adapts the Safaricom Daraja API: STK Push for C2C collection, plus
// B2C disbursement, reversal and generic transaction-status query for the
// merchant-initiated flows those require. OAuth tokens are cached in
// memory with a 60s safety margin before expiry.
type MPesa struct {
	client              *resty.Client
	consumerKey         string
	consumerSecret      string
	shortcode           string
	passkey             string
	environment         string
	baseURL             string
	initiatorName       string
	securityCredential  string
	callbackURL         string
	resultURL           string
	queueTimeoutURL     string
	transactionType     string
	identifierType      string
	tokenCache          *gocache.Cache
}

// NewMPesa builds an MPesa adapter from config keys consumer_key,
// consumer_secret, shortcode, passkey, environment, and (for B2C/reversal)
// initiator_name, security_credential, result_url, queue_timeout_url.
func NewMPesa(config map[string]any) (Adapter, error) {
	consumerKey := stringField(config, "consumer_key")
	consumerSecret := stringField(config, "consumer_secret")
	if consumerKey == "" || consumerSecret == "" {
		return nil, fmt.Errorf("mpesa: consumer_key and consumer_secret are required")
	}

	environment := strings.ToLower(stringField(config, "environment"))
	if environment == "" {
		environment = "sandbox"
	}
	baseURL, ok := mpesaBaseURLs[environment]
	if !ok {
		return nil, fmt.Errorf("mpesa: environment must be 'sandbox' or 'production', got %q", environment)
	}

	transactionType := stringField(config, "transaction_type")
	if transactionType == "" {
		transactionType = "CustomerPayBillOnline"
	}
	identifierType := stringField(config, "identifier_type")
	if identifierType == "" {
		identifierType = "4"
	}

	return &MPesa{
		client:             resty.New().SetBaseURL(baseURL),
		consumerKey:        consumerKey,
		consumerSecret:     consumerSecret,
		shortcode:          stringField(config, "shortcode"),
		passkey:            stringField(config, "passkey"),
		environment:        environment,
		baseURL:            baseURL,
		initiatorName:      stringField(config, "initiator_name"),
		securityCredential: stringField(config, "security_credential"),
		callbackURL:        stringField(config, "callback_url"),
		resultURL:          stringField(config, "result_url"),
		queueTimeoutURL:    stringField(config, "queue_timeout_url"),
		transactionType:    transactionType,
		identifierType:     identifierType,
		tokenCache:         gocache.New(55*time.Minute, 10*time.Minute),
	}, nil
}

func (p *MPesa) Name() string { return "mpesa" }

func (p *MPesa) accessToken(ctx context.Context) (string, error) {
	if tok, ok := p.tokenCache.Get(mpesaTokenCacheKey); ok {
		return tok.(string), nil
	}

	var out map[string]any
	resp, err := p.client.R().
		SetContext(ctx).
		SetBasicAuth(p.consumerKey, p.consumerSecret).
		SetResult(&out).
		Get("/oauth/v1/generate?grant_type=client_credentials")
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to obtain access token: HTTP %d", resp.StatusCode())
	}

	token, _ := out["access_token"].(string)
	expiresIn := 3600
	if v, ok := out["expires_in"].(string); ok {
		if n, err := strconv.Atoi(v); err == nil {
			expiresIn = n
		}
	}

	// Cache with a 60s safety margin before Safaricom's own expiry.
	ttl := time.Duration(expiresIn-60) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}
	p.tokenCache.Set(mpesaTokenCacheKey, token, ttl)
	return token, nil
}

func (p *MPesa) post(ctx context.Context, endpoint string, payload map[string]any) (map[string]any, error) {
	token, err := p.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var out map[string]any
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(payload).
		SetResult(&out).
		Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	if resp.IsError() {
		msg, _ := out["errorMessage"].(string)
		if msg == "" {
			msg, _ = out["ResponseDescription"].(string)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode(), msg)
	}

	if code, ok := out["ResultCode"]; ok {
		codeStr := fmt.Sprintf("%v", code)
		if strings.HasPrefix(codeStr, "500") || strings.HasPrefix(codeStr, "400") || strings.HasPrefix(codeStr, "401") {
			desc, _ := out["ResultDesc"].(string)
			return nil, fmt.Errorf("Daraja error %s: %s", codeStr, desc)
		}
	}

	return out, nil
}

func (p *MPesa) generatePassword() (timestamp, password string) {
	timestamp = time.Now().UTC().Format("20060102150405")
	raw := p.shortcode + p.passkey + timestamp
	return timestamp, base64.StdEncoding.EncodeToString([]byte(raw))
}

// normalisePhone converts +254..., 0..., 254..., 7... forms to 254XXXXXXXXX.
func normalisePhone(phone string) string {
	phone = strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(phone), " ", ""), "-", "")
	if phone == "" {
		return ""
	}
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "0") {
		phone = "254" + phone[1:]
	}
	if !strings.HasPrefix(phone, "254") {
		phone = "254" + phone
	}
	return phone
}

func (p *MPesa) InitPayment(ctx context.Context, amountCents int64, currency string, customer Customer, metadata map[string]any) (*InitResult, error) {
	phone := normalisePhone(customer.Phone)
	if phone == "" {
		return nil, fmt.Errorf("'phone' is required")
	}

	mode, _ := metadata["payment_mode"].(string)
	mode = strings.ToLower(mode)
	if mode == "" {
		mode = "stk"
	}
	accountRef := stringOrDefault(metadata, "account_reference", p.shortcode)
	txDesc := stringOrDefault(metadata, "transaction_desc", "Payment")
	amountWhole := amountCents / 100

	switch mode {
	case "stk":
		return p.stkPush(ctx, amountWhole, phone, accountRef, txDesc)
	case "c2b_simulate":
		if p.environment != "sandbox" {
			return nil, fmt.Errorf("c2b_simulate is only available in the sandbox environment")
		}
		return p.c2bSimulate(ctx, amountWhole, phone, accountRef)
	default:
		return nil, fmt.Errorf("unknown payment_mode %q: use 'stk' or 'c2b_simulate'", mode)
	}
}

func (p *MPesa) stkPush(ctx context.Context, amountWhole int64, phone, accountRef, txDesc string) (*InitResult, error) {
	if p.passkey == "" {
		return nil, fmt.Errorf("'passkey' is required for STK Push")
	}
	if p.callbackURL == "" {
		return nil, fmt.Errorf("'callback_url' is required for STK Push")
	}

	timestamp, password := p.generatePassword()
	payload := map[string]any{
		"BusinessShortCode": p.shortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"TransactionType":   p.transactionType,
		"Amount":            strconv.FormatInt(amountWhole, 10),
		"PartyA":            phone,
		"PartyB":            p.shortcode,
		"PhoneNumber":       phone,
		"CallBackURL":       p.callbackURL,
		"AccountReference":  truncate(accountRef, 12),
		"TransactionDesc":   truncate(txDesc, 13),
	}

	out, err := p.post(ctx, "/mpesa/stkpush/v1/processrequest", payload)
	if err != nil {
		return nil, fmt.Errorf("STK Push failed: %w", err)
	}

	checkoutID, _ := out["CheckoutRequestID"].(string)
	return &InitResult{
		ProviderTransactionID: checkoutID,
		Status:                domain.TransactionStatusPending,
		Raw:                   out,
	}, nil
}

func (p *MPesa) c2bSimulate(ctx context.Context, amountWhole int64, phone, billRef string) (*InitResult, error) {
	payload := map[string]any{
		"ShortCode":     p.shortcode,
		"CommandID":     "CustomerPayBillOnline",
		"Amount":        strconv.FormatInt(amountWhole, 10),
		"Msisdn":        phone,
		"BillRefNumber": billRef,
	}

	out, err := p.post(ctx, "/mpesa/c2b/v1/simulate", payload)
	if err != nil {
		return nil, fmt.Errorf("C2B simulate failed: %w", err)
	}

	convID, _ := out["ConversationID"].(string)
	return &InitResult{
		ProviderTransactionID: convID,
		Status:                domain.TransactionStatusPending,
		Raw:                   out,
	}, nil
}

func (p *MPesa) VerifyPayment(ctx context.Context, providerTransactionID string) (*VerifyResult, error) {
	timestamp, password := p.generatePassword()
	payload := map[string]any{
		"BusinessShortCode": p.shortcode,
		"Password":          password,
		"Timestamp":         timestamp,
		"CheckoutRequestID": providerTransactionID,
	}

	out, err := p.post(ctx, "/mpesa/stkpushquery/v1/query", payload)
	if err != nil {
		return nil, fmt.Errorf("STK query failed: %w", err)
	}

	resultCode := fmt.Sprintf("%v", out["ResultCode"])
	status, ok := mpesaSTKStatusMap[resultCode]
	if !ok {
		status = domain.TransactionStatusPending
	}
	return &VerifyResult{Status: status, Raw: out}, nil
}

func (p *MPesa) assertInitiatorConfig() error {
	var missing []string
	if p.initiatorName == "" {
		missing = append(missing, "initiator_name")
	}
	if p.securityCredential == "" {
		missing = append(missing, "security_credential")
	}
	if p.resultURL == "" {
		missing = append(missing, "result_url")
	}
	if p.queueTimeoutURL == "" {
		missing = append(missing, "queue_timeout_url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RefundPayment issues a Daraja TransactionReversal. Result is
// asynchronous: the final outcome arrives at result_url, so this returns
// a pending RefundResult.
func (p *MPesa) RefundPayment(ctx context.Context, providerTransactionID string, amountCents *int64, reason string) (*RefundResult, error) {
	if err := p.assertInitiatorConfig(); err != nil {
		return nil, fmt.Errorf("refund_payment: %w", err)
	}

	amountStr := ""
	if amountCents != nil {
		amountStr = strconv.FormatInt(*amountCents/100, 10)
	}
	if reason == "" {
		reason = "Refund"
	}

	payload := map[string]any{
		"Initiator":               p.initiatorName,
		"SecurityCredential":      p.securityCredential,
		"CommandID":               "TransactionReversal",
		"TransactionID":           providerTransactionID,
		"Amount":                  amountStr,
		"ReceiverParty":           p.shortcode,
		"RecieverIdentifierType":  "4",
		"ResultURL":               p.resultURL,
		"QueueTimeOutURL":         p.queueTimeoutURL,
		"Remarks":                 reason,
		"Occasion":                "",
	}

	out, err := p.post(ctx, "/mpesa/reversal/v1/request", payload)
	if err != nil {
		return nil, fmt.Errorf("reversal request failed: %w", err)
	}

	convID, _ := out["ConversationID"].(string)
	if convID == "" {
		convID = providerTransactionID
	}
	return &RefundResult{RefundID: convID, Status: domain.TransactionStatusPending, Raw: out}, nil
}

// Disburse sends a B2C payment (disbursement), e.g. refunding a customer
// out-of-band of TransactionReversal.
func (p *MPesa) Disburse(ctx context.Context, amountCents int64, phone, commandID, remarks string) (*RefundResult, error) {
	if err := p.assertInitiatorConfig(); err != nil {
		return nil, fmt.Errorf("disburse: %w", err)
	}
	if commandID == "" {
		commandID = "BusinessPayment"
	}
	if remarks == "" {
		remarks = "Disbursement"
	}

	payload := map[string]any{
		"InitiatorName":      p.initiatorName,
		"SecurityCredential": p.securityCredential,
		"CommandID":          commandID,
		"Amount":             strconv.FormatInt(amountCents/100, 10),
		"PartyA":             p.shortcode,
		"PartyB":             normalisePhone(phone),
		"Remarks":            remarks,
		"QueueTimeOutURL":    p.queueTimeoutURL,
		"ResultURL":          p.resultURL,
		"Occasion":           "",
	}

	out, err := p.post(ctx, "/mpesa/b2c/v1/paymentrequest", payload)
	if err != nil {
		return nil, fmt.Errorf("disburse failed: %w", err)
	}

	convID, _ := out["ConversationID"].(string)
	return &RefundResult{RefundID: convID, Status: domain.TransactionStatusPending, Raw: out}, nil
}

// RequestReversal queries the generic TransactionStatusQuery for command
// tracing when a reversal result callback never arrives.
func (p *MPesa) RequestReversal(ctx context.Context, transactionID, remarks string) (map[string]any, error) {
	return p.QueryTransactionStatus(ctx, transactionID, remarks)
}

// QueryTransactionStatus runs Daraja's generic TransactionStatusQuery.
// Distinct from VerifyPayment, which only covers STK CheckoutRequestIDs.
func (p *MPesa) QueryTransactionStatus(ctx context.Context, transactionID, remarks string) (map[string]any, error) {
	if err := p.assertInitiatorConfig(); err != nil {
		return nil, fmt.Errorf("query_transaction_status: %w", err)
	}
	if remarks == "" {
		remarks = "Status query"
	}

	payload := map[string]any{
		"Initiator":          p.initiatorName,
		"SecurityCredential": p.securityCredential,
		"CommandID":          "TransactionStatusQuery",
		"TransactionID":      transactionID,
		"PartyA":             p.shortcode,
		"IdentifierType":     p.identifierType,
		"ResultURL":          p.resultURL,
		"QueueTimeOutURL":    p.queueTimeoutURL,
		"Remarks":            remarks,
		"Occasion":           "",
	}

	return p.post(ctx, "/mpesa/transactionstatus/v1/query", payload)
}

// VerifyWebhookSignature validates the optional X-MPesa-Signature header.
// Most v1 callbacks omit it; absence is treated as valid, relying on
// structural checks in HandleWebhook instead.
func (p *MPesa) VerifyWebhookSignature(payload []byte, signature string) bool {
	if signature == "" {
		return true
	}
	mac := hmac.New(sha256.New, []byte(p.consumerSecret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (p *MPesa) HandleWebhook(ctx context.Context, payload map[string]any) (*WebhookResult, error) {
	if body, ok := payload["Body"].(map[string]any); ok {
		if stk, ok := body["stkCallback"].(map[string]any); ok {
			return p.handleSTKCallback(stk)
		}
	}
	if result, ok := payload["Result"].(map[string]any); ok {
		return p.handleResultCallback(result)
	}
	if _, ok := payload["TransID"]; ok {
		return p.handleC2BCallback(payload)
	}
	if _, ok := payload["BillRefNumber"]; ok {
		return p.handleC2BCallback(payload)
	}

	txID, _ := payload["TransID"].(string)
	if txID == "" {
		txID, _ = payload["CheckoutRequestID"].(string)
	}
	return &WebhookResult{
		ProviderTransactionID: txID,
		EventType:             "payment.unknown",
		Status:                domain.TransactionStatusPending,
		Raw:                   payload,
	}, nil
}

func (p *MPesa) handleSTKCallback(stk map[string]any) (*WebhookResult, error) {
	resultCode := fmt.Sprintf("%v", stk["ResultCode"])
	checkoutID, _ := stk["CheckoutRequestID"].(string)
	status := mapMPesaResultCode(resultCode)

	eventType := "payment.failed"
	if status == domain.TransactionStatusCompleted {
		eventType = "payment.completed"
	}

	return &WebhookResult{
		ProviderTransactionID: checkoutID,
		EventType:             eventType,
		Status:                status,
		Raw:                   stk,
	}, nil
}

func (p *MPesa) handleResultCallback(result map[string]any) (*WebhookResult, error) {
	resultCode := fmt.Sprintf("%v", result["ResultCode"])
	status := mapMPesaResultCode(resultCode)
	convID, _ := result["ConversationID"].(string)

	command := ""
	if refData, ok := result["ReferenceData"].(map[string]any); ok {
		if refItem, ok := refData["ReferenceItem"].(map[string]any); ok {
			command, _ = refItem["Value"].(string)
		}
	}

	var eventType string
	switch {
	case strings.Contains(command, "Reversal"):
		if status == domain.TransactionStatusCompleted {
			eventType = "payment.reversed"
		} else {
			eventType = "reversal.failed"
		}
	case strings.Contains(command, "Status"):
		eventType = "transaction.status." + string(status)
	case status == domain.TransactionStatusCompleted:
		eventType = "payment.completed"
	default:
		eventType = "payment.failed"
	}

	return &WebhookResult{
		ProviderTransactionID: convID,
		EventType:             eventType,
		Status:                status,
		Raw:                   result,
	}, nil
}

func (p *MPesa) handleC2BCallback(payload map[string]any) (*WebhookResult, error) {
	txID, _ := payload["TransID"].(string)
	return &WebhookResult{
		ProviderTransactionID: txID,
		EventType:             "payment.completed",
		Status:                domain.TransactionStatusCompleted,
		Raw:                   payload,
	}, nil
}
