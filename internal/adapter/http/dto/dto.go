package dto

// SignupRequest is the request body for POST /merchants/signup.
type SignupRequest struct {
	Username         string `json:"username" binding:"required,min=3,max=50,safe_id"`
	Password         string `json:"password" binding:"required,min=8,max=128"`
	MerchantName     string `json:"merchant_name" binding:"required,min=1,max=100"`
	Email            string `json:"email" binding:"required,email"`
	Phone            string `json:"phone,omitempty"`
	BusinessName     string `json:"business_name,omitempty"`
	BusinessCategory string `json:"business_category,omitempty"`
}

// LoginRequest is the request body for POST /merchants/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthEnvelopeResponse wraps the sealed API-key envelope returned by both
// signup and login.
type AuthEnvelopeResponse struct {
	MerchantID string             `json:"merchant_id"`
	AccountID  string             `json:"account_id"`
	APIKey     APIKeyEnvelopeJSON `json:"api_key"`
}

// APIKeyEnvelopeJSON mirrors ports.APIKeyEnvelope for the wire.
type APIKeyEnvelopeJSON struct {
	Data string `json:"data"`
	IV   string `json:"iv"`
	Alg  string `json:"alg"`
}

// CustomerDTO is the optional customer block on an initialize request and
// the nested customer object on a transaction response.
type CustomerDTO struct {
	ID    string `json:"id,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// InitializeRequest is the request body for POST /payments/initialize.
type InitializeRequest struct {
	Provider string                 `json:"provider" binding:"required,safe_id"`
	Amount   string                 `json:"amount" binding:"required"`
	Currency string                 `json:"currency" binding:"required,len=3"`
	Customer CustomerDTO            `json:"customer"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// RefundRequest is the request body for POST /payments/{id}/refund.
type RefundRequest struct {
	Amount *string `json:"amount,omitempty"`
	Reason string  `json:"reason,omitempty"`
}

// TransactionResponse is the JSON form of the Transaction entity plus a
// nested customer object, per §6's canonical response.
type TransactionResponse struct {
	ID                    string      `json:"id"`
	IdempotencyKey        string      `json:"idempotency_key"`
	MerchantID            string      `json:"merchant_id"`
	Provider              string      `json:"provider"`
	ProviderTransactionID *string     `json:"provider_transaction_id,omitempty"`
	Amount                string      `json:"amount"`
	Currency              string      `json:"currency"`
	Status                string      `json:"status"`
	Customer              CustomerDTO `json:"customer"`
	PaymentMethod         string      `json:"payment_method,omitempty"`
	CreatedAt             string      `json:"created_at"`
	UpdatedAt             string      `json:"updated_at"`
	CompletedAt           *string     `json:"completed_at,omitempty"`
}

// TransactionListResponse wraps a paginated transaction list.
type TransactionListResponse struct {
	Items      []TransactionResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}
