package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"payment-gateway-aggregator/internal/adapter/http/middleware"
	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/internal/core/ports/mocks"
	"payment-gateway-aggregator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func sampleTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:             uuid.New(),
		MerchantID:     uuid.New(),
		Provider:       "cpay",
		AmountCents:    10000,
		Currency:       "ZAR",
		Status:         domain.TransactionStatusPending,
		IdempotencyKey: "idem-1",
	}
}

func TestPaymentHandler_Initialize_Unauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/initialize", map[string]any{
		"provider": "cpay", "amount": "100.00", "currency": "ZAR",
	})

	h.Initialize(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentHandler_Initialize_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/initialize", map[string]any{
		"provider": "cpay", "amount": "not-a-number", "currency": "ZAR",
	})
	c.Set(middleware.CtxMerchantID, uuid.New())

	h.Initialize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Initialize_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	mID := uuid.New()
	txn := sampleTransaction()
	txn.MerchantID = mID

	svc.EXPECT().Initialize(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req ports.InitializeRequest) (*domain.Transaction, error) {
			assert.Equal(t, mID, req.MerchantID)
			assert.Equal(t, int64(10000), req.AmountCents)
			return txn, nil
		})

	c, w := newTestContext(http.MethodPost, "/payments/initialize", map[string]any{
		"provider": "cpay", "amount": "100.00", "currency": "ZAR",
	})
	c.Set(middleware.CtxMerchantID, mID)

	h.Initialize(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPaymentHandler_Verify_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	c, w := newTestContext(http.MethodPost, "/payments/not-a-uuid/verify", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.Verify(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	id := uuid.New()
	svc.EXPECT().Get(gomock.Any(), id).Return(nil, apperror.ErrNotFound("transaction"))

	c, w := newTestContext(http.MethodGet, "/payments/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_List_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	mID := uuid.New()
	svc.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, p ports.TransactionListParams) (*ports.TransactionListResult, error) {
			assert.Equal(t, mID, p.MerchantID)
			assert.Equal(t, 1, p.Page)
			assert.Equal(t, 20, p.PageSize)
			return &ports.TransactionListResult{Items: nil, Total: 0, Page: 1, PerPage: 20, Pages: 0}, nil
		})

	c, w := newTestContext(http.MethodGet, "/payments", nil)
	c.Set(middleware.CtxMerchantID, mID)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentHandler_Refund_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	id := uuid.New()
	bad := "garbage"
	c, w := newTestContext(http.MethodPost, "/payments/"+id.String()+"/refund", map[string]any{"amount": bad})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Refund(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_Refund_NoBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	id := uuid.New()
	txn := sampleTransaction()
	txn.ID = id
	svc.EXPECT().Refund(gomock.Any(), id, (*int64)(nil), "").Return(txn, nil)

	c, w := newTestContext(http.MethodPost, "/payments/"+id.String()+"/refund", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	c.Request.ContentLength = 0

	h.Refund(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPaymentHandler_Reconcile_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPaymentService(ctrl)
	h := NewPaymentHandler(svc)

	svc.EXPECT().Reconcile(gomock.Any(), 100).Return(&ports.ReconcileResult{TotalPending: 3, Reconciled: 1}, nil)

	c, w := newTestContext(http.MethodPost, "/payments/reconcile", nil)

	h.Reconcile(c)

	require.Equal(t, http.StatusOK, w.Code)
}
