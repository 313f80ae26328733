package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Authentication (AUTH) ----

func ErrUnauthorized() *AppError {
	return New("AUTH_001", "Missing or invalid API key", http.StatusUnauthorized)
}

func ErrUsernameExists() *AppError {
	return New("AUTH_002", "Username already exists", http.StatusConflict)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_003", "Invalid credentials", http.StatusUnauthorized)
}

// ---- Provider configuration (PROV) ----

func ErrProviderNotConfigured(provider string) *AppError {
	return New("PROV_001", fmt.Sprintf("Provider %q is not configured for this merchant", provider), http.StatusBadRequest)
}

func ErrProviderUnknown(provider string) *AppError {
	return New("PROV_002", fmt.Sprintf("Unknown provider %q", provider), http.StatusBadRequest)
}

// ---- Payment Business Logic (PAY) ----

func ErrInvalidAmount() *AppError {
	return New("PAY_001", "Amount must be greater than zero with at most two fractional digits", http.StatusBadRequest)
}

func ErrDuplicateTransaction() *AppError {
	return New("PAY_002", "Duplicate transaction", http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New("PAY_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrInvalidRefund() *AppError {
	return New("PAY_004", "Transaction is not eligible for refund", http.StatusBadRequest)
}

func ErrRefundAmountExceedsOriginal() *AppError {
	return New("PAY_005", "Refund amount exceeds original transaction amount", http.StatusBadRequest)
}

func ErrRefundUnsupported(provider string) *AppError {
	return New("PAY_006", fmt.Sprintf("%s does not support refunds", provider), http.StatusBadRequest)
}

// ErrRefundUnsupportedRef is ErrRefundUnsupported with the original
// provider transaction reference echoed in the message, per §8 scenario 5.
func ErrRefundUnsupportedRef(provider, providerTransactionID string) *AppError {
	return New("PAY_006", fmt.Sprintf("%s does not support refunds (provider_transaction_id=%s)", provider, providerTransactionID), http.StatusBadRequest)
}

func ErrInvariantViolation(message string) *AppError {
	return New("PAY_007", message, http.StatusInternalServerError)
}

// ---- Provider adapter dispatch (GW) ----

func ErrPaymentInitialization(provider string, err error) *AppError {
	return Wrap("GW_001", fmt.Sprintf("%s: payment initialization failed", provider), http.StatusBadGateway, err)
}

func ErrPaymentVerification(provider string, err error) *AppError {
	return Wrap("GW_002", fmt.Sprintf("%s: payment verification failed", provider), http.StatusBadGateway, err)
}

func ErrRefund(provider string, err error) *AppError {
	return Wrap("GW_003", fmt.Sprintf("%s: refund failed", provider), http.StatusBadGateway, err)
}

func ErrWebhookVerification(message string) *AppError {
	return New("GW_004", message, http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap("SYS_002", "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrEncryptionFailure(err error) *AppError {
	return Wrap("SYS_003", "Encryption service failure", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_000 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_000", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a generic request-validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
