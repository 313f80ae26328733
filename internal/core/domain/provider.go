package domain

import (
	"time"

	"github.com/google/uuid"
)

// Provider is a static registry entry: one row per supported upstream.
type Provider struct {
	ID        uuid.UUID `json:"id"`
	ShortName string    `json:"short_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProviderConfig is a merchant's activation and credential set for one
// Provider. Config is an opaque JSON blob; recognised keys are
// provider-specific (see internal/provider). Credentials embedded in
// Config are encrypted at rest and decrypted only during adapter
// construction.
type ProviderConfig struct {
	ID         uuid.UUID `json:"id"`
	MerchantID uuid.UUID `json:"merchant_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	ShortName  string    `json:"short_name"` // denormalised for convenience, not persisted separately
	IsActive   bool      `json:"is_active"`
	Config     []byte    `json:"config"` // opaque JSON
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
