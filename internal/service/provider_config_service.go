package service

import (
	"context"
	"encoding/json"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/google/uuid"
)

// DefaultProviderConfigService implements ports.ProviderConfigService (C2):
// per-merchant provider activation and credential storage. Credentials
// embedded in Config are encrypted at rest via EncryptionService and
// decrypted only when loaded back out for adapter construction.
type DefaultProviderConfigService struct {
	repo       ports.ProviderConfigRepository
	encryption ports.EncryptionService
}

// NewDefaultProviderConfigService creates a new provider config service.
func NewDefaultProviderConfigService(repo ports.ProviderConfigRepository, encryption ports.EncryptionService) *DefaultProviderConfigService {
	return &DefaultProviderConfigService{repo: repo, encryption: encryption}
}

// credentialFields lists the config keys treated as secrets and encrypted
// at rest. Anything else in config passes through as plaintext JSON.
var credentialFields = []string{"api_key", "api_secret", "client_id", "consumer_key", "consumer_secret", "passkey", "security_credential"}

func (s *DefaultProviderConfigService) encryptCredentials(config map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(config))
	for k, v := range config {
		out[k] = v
	}
	for _, field := range credentialFields {
		raw, ok := out[field]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok || str == "" {
			continue
		}
		enc, err := s.encryption.Encrypt(str)
		if err != nil {
			return nil, fmt.Errorf("encrypting %s: %w", field, err)
		}
		out[field] = enc
	}
	return out, nil
}

func (s *DefaultProviderConfigService) decryptCredentials(config map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(config))
	for k, v := range config {
		out[k] = v
	}
	for _, field := range credentialFields {
		raw, ok := out[field]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok || str == "" {
			continue
		}
		dec, err := s.encryption.Decrypt(str)
		if err != nil {
			return nil, fmt.Errorf("decrypting %s: %w", field, err)
		}
		out[field] = dec
	}
	return out, nil
}

// Load fetches and decrypts a merchant's active configuration for a
// provider. Returns nil, nil if no active config exists.
func (s *DefaultProviderConfigService) Load(ctx context.Context, merchantID uuid.UUID, providerShortName string) (*domain.ProviderConfig, error) {
	cfg, err := s.repo.GetActive(ctx, merchantID, providerShortName)
	if err != nil {
		return nil, fmt.Errorf("load provider config: %w", err)
	}
	if cfg == nil {
		return nil, nil
	}

	var raw map[string]any
	if err := json.Unmarshal(cfg.Config, &raw); err != nil {
		return nil, fmt.Errorf("decoding provider config: %w", err)
	}

	decrypted, err := s.decryptCredentials(raw)
	if err != nil {
		return nil, err
	}
	decoded, err := json.Marshal(decrypted)
	if err != nil {
		return nil, fmt.Errorf("re-encoding decrypted config: %w", err)
	}
	cfg.Config = decoded
	return cfg, nil
}

// Upsert encrypts credential fields and persists a merchant's
// configuration for a provider.
func (s *DefaultProviderConfigService) Upsert(ctx context.Context, merchantID uuid.UUID, providerShortName string, config map[string]any, isActive bool) error {
	encrypted, err := s.encryptCredentials(config)
	if err != nil {
		return err
	}
	data, err := json.Marshal(encrypted)
	if err != nil {
		return fmt.Errorf("encoding provider config: %w", err)
	}

	return s.repo.Upsert(ctx, &domain.ProviderConfig{
		MerchantID: merchantID,
		ShortName:  providerShortName,
		IsActive:   isActive,
		Config:     data,
	})
}
