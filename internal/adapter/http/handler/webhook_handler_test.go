package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"payment-gateway-aggregator/internal/core/ports/mocks"
	"payment-gateway-aggregator/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newWebhookContext(provider string, body []byte, sigHeader, sig string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/"+provider, bytes.NewReader(body))
	if sigHeader != "" {
		req.Header.Set(sigHeader, sig)
	}
	c.Request = req
	c.Params = gin.Params{{Key: "provider", Value: provider}}
	return c, w
}

func TestWebhookHandler_Receive_EmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(svc)

	c, w := newWebhookContext("cpay", nil, "", "")

	h.Receive(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_Receive_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(svc)

	eventID := uuid.New()
	svc.EXPECT().Receive(gomock.Any(), "mpesa", gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, _ string, _ []byte, sig *string, _ []byte) (uuid.UUID, error) {
			assert.NotNil(t, sig)
			assert.Equal(t, "sig-value", *sig)
			return eventID, nil
		})
	svc.EXPECT().Process(gomock.Any(), eventID).Return(nil)

	c, w := newWebhookContext("mpesa", []byte(`{"result":"ok"}`), "X-MPesa-Signature", "sig-value")

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookHandler_Receive_NoSignatureHeaderForUnsignedProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(svc)

	eventID := uuid.New()
	svc.EXPECT().Receive(gomock.Any(), "cpay", gomock.Any(), nil, gomock.Any()).Return(eventID, nil)
	svc.EXPECT().Process(gomock.Any(), eventID).Return(nil)

	c, w := newWebhookContext("cpay", []byte(`{"result":"ok"}`), "", "")

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookHandler_Receive_StillOKWhenProcessFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockWebhookService(ctrl)
	h := NewWebhookHandler(svc)

	eventID := uuid.New()
	svc.EXPECT().Receive(gomock.Any(), "cpay", gomock.Any(), nil, gomock.Any()).Return(eventID, nil)
	svc.EXPECT().Process(gomock.Any(), eventID).Return(apperror.ErrWebhookVerification("bad signature"))

	c, w := newWebhookContext("cpay", []byte(`{"result":"ok"}`), "", "")

	h.Receive(c)

	assert.Equal(t, http.StatusOK, w.Code, "event already persisted, so Receive still answers 200 even if inline Process fails")
}
