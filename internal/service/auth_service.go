package service

import (
	"context"
	"errors"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// apiKeyPrefix tags every issued merchant API key so leaked keys are
// recognisable at a glance in logs and support tickets.
const apiKeyPrefix = "mch_live"

// DefaultAuthService implements ports.AuthService (C7): merchant signup,
// login, and the API-key gate C8 uses on every merchant-facing request.
type DefaultAuthService struct {
	merchantRepo ports.MerchantRepository
	accountRepo  ports.AccountRepository
	transactor   ports.DBTransactor
	hash         ports.HashService
	keyGen       ports.APIKeyGenerator
	envelope     ports.APIKeyEnvelopeService
}

// NewDefaultAuthService creates a new auth service.
func NewDefaultAuthService(
	merchantRepo ports.MerchantRepository,
	accountRepo ports.AccountRepository,
	transactor ports.DBTransactor,
	hash ports.HashService,
	keyGen ports.APIKeyGenerator,
	envelope ports.APIKeyEnvelopeService,
) *DefaultAuthService {
	return &DefaultAuthService{
		merchantRepo: merchantRepo,
		accountRepo:  accountRepo,
		transactor:   transactor,
		hash:         hash,
		keyGen:       keyGen,
		envelope:     envelope,
	}
}

// Signup creates a Merchant and its first Account atomically. The
// plaintext API key is sealed with aes_gcm_seal keyed on the merchant id
// and returned exactly once; only its SHA-256 digest is persisted.
func (s *DefaultAuthService) Signup(ctx context.Context, req ports.SignupRequest) (*ports.AuthEnvelope, error) {
	existing, err := s.accountRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if existing != nil {
		return nil, apperror.ErrUsernameExists()
	}

	rawKey, err := s.keyGen.Generate(apiKeyPrefix)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	now := time.Now().UTC()
	merchant := &domain.Merchant{
		ID:               uuid.New(),
		Name:             req.MerchantName,
		Email:            req.Email,
		Phone:            req.Phone,
		BusinessName:     req.BusinessName,
		BusinessCategory: req.BusinessCategory,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	account := &domain.Account{
		ID:             uuid.New(),
		MerchantID:     merchant.ID,
		Username:       req.Username,
		PasswordDigest: s.hash.HashPassword(req.Password),
		APIKeyHash:     s.hash.HashPassword(rawKey),
		APIKeyPrefix:   apiKeyPrefix,
		CreatedAt:      now,
	}

	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.merchantRepo.Create(ctx, tx, merchant); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := s.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := commitTx(ctx, tx); err != nil {
		return nil, err
	}

	return s.sealEnvelope(merchant.ID, account.ID, rawKey)
}

// Login authenticates by (username, sha256(password)) and issues a fresh
// API key, sealing it the same way Signup does. Only the key's digest is
// ever persisted (§9's production design), so login cannot recover the
// plaintext key issued at signup; it rotates to a new one instead and
// persists its digest before resealing, so the envelope it returns is a
// working bearer credential, not the account's stored hash.
func (s *DefaultAuthService) Login(ctx context.Context, username, password string) (*ports.AuthEnvelope, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if account == nil || !s.hash.VerifyPassword(password, account.PasswordDigest) {
		return nil, apperror.ErrInvalidCredentials()
	}

	rawKey, err := s.keyGen.Generate(apiKeyPrefix)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := s.accountRepo.UpdateAPIKeyHash(ctx, account.ID, s.hash.HashPassword(rawKey)); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	return s.sealEnvelope(account.MerchantID, account.ID, rawKey)
}

func (s *DefaultAuthService) sealEnvelope(merchantID, accountID uuid.UUID, plaintext string) (*ports.AuthEnvelope, error) {
	env, err := s.envelope.Seal(merchantID.String(), plaintext)
	if err != nil {
		return nil, apperror.ErrEncryptionFailure(err)
	}
	return &ports.AuthEnvelope{
		MerchantID: merchantID,
		AccountID:  accountID,
		APIKey:     env,
	}, nil
}

// RequireAPIKey resolves the Account owning apiKey, the gate C8's
// middleware applies to every merchant-facing request.
func (s *DefaultAuthService) RequireAPIKey(ctx context.Context, apiKey string) (*domain.Account, error) {
	if apiKey == "" {
		return nil, apperror.ErrUnauthorized()
	}
	account, err := s.accountRepo.GetByAPIKeyHash(ctx, s.hash.HashPassword(apiKey))
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if account == nil {
		return nil, apperror.ErrUnauthorized()
	}
	return account, nil
}

func commitTx(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return nil
		}
		return apperror.ErrDatabaseError(err)
	}
	return nil
}
