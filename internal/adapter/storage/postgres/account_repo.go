package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-gateway-aggregator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements ports.AccountRepository.
type AccountRepo struct {
	pool Pool
}

// NewAccountRepo creates a new AccountRepo.
func NewAccountRepo(pool Pool) *AccountRepo {
	return &AccountRepo{pool: pool}
}

func (r *AccountRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.Account) error {
	query := `INSERT INTO accounts (id, merchant_id, username, password_digest, api_key_hash, api_key_prefix, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	var err error
	if tx != nil {
		_, err = tx.Exec(ctx, query, a.ID, a.MerchantID, a.Username, a.PasswordDigest, a.APIKeyHash, a.APIKeyPrefix, a.CreatedAt)
	} else {
		_, err = r.pool.Exec(ctx, query, a.ID, a.MerchantID, a.Username, a.PasswordDigest, a.APIKeyHash, a.APIKeyPrefix, a.CreatedAt)
	}
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepo) scanOne(row pgx.Row) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.ID, &a.MerchantID, &a.Username, &a.PasswordDigest, &a.APIKeyHash, &a.APIKeyPrefix, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT id, merchant_id, username, password_digest, api_key_hash, api_key_prefix, created_at
		FROM accounts WHERE username = $1`
	a, err := r.scanOne(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("get account by username: %w", err)
	}
	return a, nil
}

func (r *AccountRepo) GetByAPIKeyHash(ctx context.Context, apiKeyHash string) (*domain.Account, error) {
	query := `SELECT id, merchant_id, username, password_digest, api_key_hash, api_key_prefix, created_at
		FROM accounts WHERE api_key_hash = $1`
	a, err := r.scanOne(r.pool.QueryRow(ctx, query, apiKeyHash))
	if err != nil {
		return nil, fmt.Errorf("get account by api key hash: %w", err)
	}
	return a, nil
}

// UpdateAPIKeyHash rotates the digest backing an account's bearer
// credential. Login issues a fresh key and persists its hash here so the
// envelope it reseals is one RequireAPIKey can actually authenticate.
func (r *AccountRepo) UpdateAPIKeyHash(ctx context.Context, accountID uuid.UUID, apiKeyHash string) error {
	query := `UPDATE accounts SET api_key_hash = $1 WHERE id = $2`
	_, err := r.pool.Exec(ctx, query, apiKeyHash, accountID)
	if err != nil {
		return fmt.Errorf("update account api key hash: %w", err)
	}
	return nil
}
