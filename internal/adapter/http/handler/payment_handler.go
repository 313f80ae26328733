package handler

import (
	"encoding/json"

	"payment-gateway-aggregator/internal/adapter/http/dto"
	"payment-gateway-aggregator/internal/adapter/http/middleware"
	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/pkg/apperror"
	"payment-gateway-aggregator/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PaymentHandler handles the five core merchant-facing payment endpoints
// plus the refund and reconciliation operations carried over from C5.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func merchantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxMerchantID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Initialize handles POST /payments/initialize.
func (h *PaymentHandler) Initialize(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized())
		return
	}

	var req dto.InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	amountCents, err := domain.ParseAmountCents(req.Amount)
	if err != nil {
		response.Error(c, apperror.ErrInvalidAmount())
		return
	}

	var metadata []byte
	if len(req.Metadata) > 0 {
		metadata, _ = json.Marshal(req.Metadata)
	}

	txn, err := h.paymentSvc.Initialize(c.Request.Context(), ports.InitializeRequest{
		MerchantID:  mID,
		Provider:    req.Provider,
		AmountCents: amountCents,
		Currency:    req.Currency,
		Customer: domain.Customer{
			ID:    req.Customer.ID,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
			Name:  req.Customer.Name,
		},
		Metadata:       metadata,
		IdempotencyKey: c.GetHeader(middleware.HeaderIdempotencyKey),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toTransactionResponse(txn))
}

// Verify handles POST /payments/{id}/verify.
func (h *PaymentHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.paymentSvc.Verify(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(txn))
}

// Get handles GET /payments/{id}.
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.paymentSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(txn))
}

// List handles GET /payments.
func (h *PaymentHandler) List(c *gin.Context) {
	mID, ok := merchantID(c)
	if !ok {
		response.Error(c, apperror.ErrUnauthorized())
		return
	}

	params := ports.TransactionListParams{
		MerchantID: mID,
		Page:       atoiOrDefault(c.Query("page"), 1),
		PageSize:   atoiOrDefault(c.Query("page_size"), 20),
	}
	if p := c.Query("provider"); p != "" {
		params.Provider = &p
	}
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		params.Status = &status
	}
	if cid := c.Query("customer_id"); cid != "" {
		params.CustomerID = &cid
	}

	result, err := h.paymentSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.TransactionResponse, len(result.Items))
	for i := range result.Items {
		items[i] = toTransactionResponse(&result.Items[i])
	}
	response.OK(c, dto.TransactionListResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PerPage,
		TotalPages: result.Pages,
	})
}

// Refund handles POST /payments/{id}/refund.
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	var req dto.RefundRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
		dto.SanitizeStruct(&req)
	}

	var amountCents *int64
	if req.Amount != nil {
		cents, err := domain.ParseAmountCents(*req.Amount)
		if err != nil {
			response.Error(c, apperror.ErrInvalidAmount())
			return
		}
		amountCents = &cents
	}

	txn, err := h.paymentSvc.Refund(c.Request.Context(), id, amountCents, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toTransactionResponse(txn))
}

// Reconcile handles POST /payments/reconcile — the admin-triggered
// scan over every pending/processing transaction (§8 scenario 6).
func (h *PaymentHandler) Reconcile(c *gin.Context) {
	result, err := h.paymentSvc.Reconcile(c.Request.Context(), atoiOrDefault(c.Query("limit"), 100))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func toTransactionResponse(tx *domain.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:                    tx.ID.String(),
		IdempotencyKey:        tx.IdempotencyKey,
		MerchantID:            tx.MerchantID.String(),
		Provider:              tx.Provider,
		ProviderTransactionID: tx.ProviderTransactionID,
		Amount:                tx.Amount(),
		Currency:              tx.Currency,
		Status:                string(tx.Status),
		Customer: dto.CustomerDTO{
			ID:    tx.Customer.ID,
			Phone: tx.Customer.Phone,
			Email: tx.Customer.Email,
			Name:  tx.Customer.Name,
		},
		PaymentMethod: tx.PaymentMethod,
		CreatedAt:     tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     tx.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if tx.CompletedAt != nil {
		s := tx.CompletedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.CompletedAt = &s
	}
	return resp
}

func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return def
	}
	return n
}
