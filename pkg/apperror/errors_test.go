package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Amount must be greater than zero", http.StatusBadRequest),
			expected: "[PAY_001] Amount must be greater than zero",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("PAY_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestAuthErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Unauthorized", ErrUnauthorized(), "AUTH_001", 401},
		{"UsernameExists", ErrUsernameExists(), "AUTH_002", 409},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_003", 401},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestProviderErrors(t *testing.T) {
	notConfigured := ErrProviderNotConfigured("mpesa")
	assert.Equal(t, "PROV_001", notConfigured.Code)
	assert.Equal(t, 400, notConfigured.HTTPStatus)
	assert.Contains(t, notConfigured.Message, "mpesa")

	unknown := ErrProviderUnknown("bogus")
	assert.Equal(t, "PROV_002", unknown.Code)
	assert.Equal(t, 400, unknown.HTTPStatus)
	assert.Contains(t, unknown.Message, "bogus")
}

func TestPaymentErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidAmount", ErrInvalidAmount(), "PAY_001", 400},
		{"DuplicateTransaction", ErrDuplicateTransaction(), "PAY_002", 409},
		{"NotFound", ErrNotFound("Transaction"), "PAY_003", 404},
		{"InvalidRefund", ErrInvalidRefund(), "PAY_004", 400},
		{"RefundAmountExceeds", ErrRefundAmountExceedsOriginal(), "PAY_005", 400},
		{"RefundUnsupported", ErrRefundUnsupported("standardbankpay"), "PAY_006", 400},
		{"InvariantViolation", ErrInvariantViolation("illegal transition"), "PAY_007", 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestGatewayErrors(t *testing.T) {
	inner := fmt.Errorf("upstream timed out")

	initErr := ErrPaymentInitialization("cpay", inner)
	assert.Equal(t, "GW_001", initErr.Code)
	assert.Equal(t, http.StatusBadGateway, initErr.HTTPStatus)
	assert.True(t, errors.Is(initErr, inner))

	verifyErr := ErrPaymentVerification("cpay", inner)
	assert.Equal(t, "GW_002", verifyErr.Code)

	refundErr := ErrRefund("cpay", inner)
	assert.Equal(t, "GW_003", refundErr.Code)

	webhookErr := ErrWebhookVerification("bad signature")
	assert.Equal(t, "GW_004", webhookErr.Code)
	assert.Equal(t, http.StatusBadRequest, webhookErr.HTTPStatus)
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	lockErr := ErrLockTimeout(inner)
	assert.Equal(t, "SYS_002", lockErr.Code)
	assert.Equal(t, 503, lockErr.HTTPStatus)

	encErr := ErrEncryptionFailure(inner)
	assert.Equal(t, "SYS_003", encErr.Code)
	assert.Equal(t, 500, encErr.HTTPStatus)

	internalErr := InternalError(inner)
	assert.Equal(t, "SYS_000", internalErr.Code)
}

func TestRateLimitError(t *testing.T) {
	err := ErrRateLimitExceeded()
	assert.Equal(t, "RATE_001", err.Code)
	assert.Equal(t, 429, err.HTTPStatus)
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Merchant")
	assert.Contains(t, err.Message, "Merchant")
	assert.Equal(t, "PAY_003", err.Code)
}

func TestValidation(t *testing.T) {
	err := Validation("amount must be positive")
	assert.Equal(t, "VAL_001", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}
