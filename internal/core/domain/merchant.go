package domain

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is the business identity behind a set of Accounts and
// ProviderConfigs. It carries no authentication material of its own.
type Merchant struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	BusinessName     string    `json:"business_name,omitempty"`
	BusinessCategory string    `json:"business_category,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Account is the authentication principal for a Merchant: the thing a
// request actually authenticates as. One Merchant may own several.
type Account struct {
	ID             uuid.UUID `json:"id"`
	MerchantID     uuid.UUID `json:"merchant_id"`
	Username       string    `json:"username"`
	PasswordDigest string    `json:"-"` // sha256_hex(password), never exposed
	APIKeyHash     string    `json:"-"` // sha256_hex(api_key), stored at rest; never exposed
	APIKeyPrefix   string    `json:"api_key_prefix"`
	CreatedAt      time.Time `json:"created_at"`
}
