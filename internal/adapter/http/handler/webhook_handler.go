package handler

import (
	"io"

	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/pkg/apperror"
	"payment-gateway-aggregator/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles inbound provider push notifications (C6).
type WebhookHandler struct {
	webhookSvc ports.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(webhookSvc ports.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookSvc: webhookSvc}
}

// providerSignatureHeaders lists the signature header each built-in
// provider carries on its push notifications, per §6. Providers absent
// from this map (standardbankpay, cpay) carry no signature of their own.
var providerSignatureHeaders = map[string]string{
	"mpesa": "X-MPesa-Signature",
}

// Receive handles POST /webhooks/{provider}. It always durably stores the
// event before responding, per §6, then attempts an inline process so a
// well-behaved push resolves synchronously; a processing failure still
// yields 200 since the event has already been persisted for retry.
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider := c.Param("provider")

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("unreadable request body"))
		return
	}
	if len(raw) == 0 {
		response.Error(c, apperror.Validation("empty webhook body"))
		return
	}

	var signature *string
	if header, ok := providerSignatureHeaders[provider]; ok {
		if sig := c.GetHeader(header); sig != "" {
			signature = &sig
		}
	}

	eventID, err := h.webhookSvc.Receive(c.Request.Context(), provider, raw, signature, raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	_ = h.webhookSvc.Process(c.Request.Context(), eventID)

	response.OK(c, gin.H{"event_id": eventID, "received": true})
}
