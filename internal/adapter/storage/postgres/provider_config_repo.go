package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProviderConfigRepo implements ports.ProviderConfigRepository.
type ProviderConfigRepo struct {
	pool Pool
}

// NewProviderConfigRepo creates a new ProviderConfigRepo.
func NewProviderConfigRepo(pool Pool) *ProviderConfigRepo {
	return &ProviderConfigRepo{pool: pool}
}

func (r *ProviderConfigRepo) GetActive(ctx context.Context, merchantID uuid.UUID, providerShortName string) (*domain.ProviderConfig, error) {
	query := `SELECT pc.id, pc.merchant_id, pc.provider_id, p.short_name, pc.is_active, pc.config, pc.created_at, pc.updated_at
		FROM provider_configs pc
		JOIN providers p ON p.id = pc.provider_id
		WHERE pc.merchant_id = $1 AND p.short_name = $2 AND pc.is_active = true`

	cfg := &domain.ProviderConfig{}
	err := r.pool.QueryRow(ctx, query, merchantID, providerShortName).Scan(
		&cfg.ID, &cfg.MerchantID, &cfg.ProviderID, &cfg.ShortName, &cfg.IsActive, &cfg.Config, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active provider config: %w", err)
	}
	return cfg, nil
}

// Upsert inserts or updates a merchant's configuration for a provider,
// looking up the provider's ID from its short name and creating the
// registry row if it doesn't yet exist (providers are a small closed set,
// but the registry table is the source of truth for provider_id).
func (r *ProviderConfigRepo) Upsert(ctx context.Context, cfg *domain.ProviderConfig) error {
	var providerID uuid.UUID
	err := r.pool.QueryRow(ctx, `SELECT id FROM providers WHERE short_name = $1`, cfg.ShortName).Scan(&providerID)
	if errors.Is(err, pgx.ErrNoRows) {
		providerID = uuid.New()
		_, err = r.pool.Exec(ctx, `INSERT INTO providers (id, short_name, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())`, providerID, cfg.ShortName)
		if err != nil {
			return fmt.Errorf("register provider %q: %w", cfg.ShortName, err)
		}
	} else if err != nil {
		return fmt.Errorf("lookup provider %q: %w", cfg.ShortName, err)
	}
	cfg.ProviderID = providerID
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}

	query := `INSERT INTO provider_configs (id, merchant_id, provider_id, is_active, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (merchant_id, provider_id) DO UPDATE
		SET is_active = EXCLUDED.is_active, config = EXCLUDED.config, updated_at = NOW()`

	_, err = r.pool.Exec(ctx, query, cfg.ID, cfg.MerchantID, cfg.ProviderID, cfg.IsActive, cfg.Config)
	if err != nil {
		return fmt.Errorf("upsert provider config: %w", err)
	}
	return nil
}
