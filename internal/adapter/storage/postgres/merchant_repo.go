package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MerchantRepo implements ports.MerchantRepository.
type MerchantRepo struct {
	pool Pool
}

// NewMerchantRepo creates a new MerchantRepo.
func NewMerchantRepo(pool Pool) *MerchantRepo {
	return &MerchantRepo{pool: pool}
}

func (r *MerchantRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.Merchant) error {
	query := `INSERT INTO merchants (id, name, email, phone, business_name, business_category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.BusinessName, m.BusinessCategory, m.CreatedAt, m.UpdatedAt)
	} else {
		_, err = r.pool.Exec(ctx, query, m.ID, m.Name, m.Email, m.Phone, m.BusinessName, m.BusinessCategory, m.CreatedAt, m.UpdatedAt)
	}
	if err != nil {
		return fmt.Errorf("insert merchant: %w", err)
	}
	return nil
}

func (r *MerchantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Merchant, error) {
	query := `SELECT id, name, email, phone, business_name, business_category, created_at, updated_at
		FROM merchants WHERE id = $1`

	m := &domain.Merchant{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.BusinessName, &m.BusinessCategory, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant by id: %w", err)
	}
	return m, nil
}
