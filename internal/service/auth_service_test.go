package service

import (
	"context"
	"testing"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type authTestDeps struct {
	svc          *DefaultAuthService
	merchantRepo *mocks.MockMerchantRepository
	accountRepo  *mocks.MockAccountRepository
	transactor   *mocks.MockDBTransactor
	hash         *mocks.MockHashService
	keyGen       *mocks.MockAPIKeyGenerator
	envelope     *mocks.MockAPIKeyEnvelopeService
	ctrl         *gomock.Controller
}

func setupAuthService(t *testing.T) *authTestDeps {
	ctrl := gomock.NewController(t)
	d := &authTestDeps{
		merchantRepo: mocks.NewMockMerchantRepository(ctrl),
		accountRepo:  mocks.NewMockAccountRepository(ctrl),
		transactor:   mocks.NewMockDBTransactor(ctrl),
		hash:         mocks.NewMockHashService(ctrl),
		keyGen:       mocks.NewMockAPIKeyGenerator(ctrl),
		envelope:     mocks.NewMockAPIKeyEnvelopeService(ctrl),
		ctrl:         ctrl,
	}
	d.svc = NewDefaultAuthService(d.merchantRepo, d.accountRepo, d.transactor, d.hash, d.keyGen, d.envelope)
	return d
}

func TestAuthService_Signup_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	tx := &mockTx{}

	d.accountRepo.EXPECT().GetByUsername(ctx, "acme").Return(nil, nil)
	d.keyGen.EXPECT().Generate(apiKeyPrefix).Return("mch_live_rawkey", nil)
	d.hash.EXPECT().HashPassword("s3cret").Return("hash_password")
	d.hash.EXPECT().HashPassword("mch_live_rawkey").Return("hash_apikey")
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.merchantRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.accountRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.envelope.EXPECT().Seal(gomock.Any(), "mch_live_rawkey").Return(ports.APIKeyEnvelope{CiphertextB64: "ct", IVB64: "iv", Alg: "AES-256-GCM"}, nil)

	env, err := d.svc.Signup(ctx, ports.SignupRequest{
		Username:     "acme",
		Password:     "s3cret",
		MerchantName: "Acme Ltd",
		Email:        "billing@acme.test",
	})
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "ct", env.APIKey.CiphertextB64)
}

func TestAuthService_Signup_UsernameExists(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.accountRepo.EXPECT().GetByUsername(ctx, "acme").Return(&domain.Account{ID: uuid.New()}, nil)

	env, err := d.svc.Signup(ctx, ports.SignupRequest{Username: "acme", Password: "s3cret"})
	assert.Nil(t, env)
	assertAppError(t, err, "AUTH_002")
}

func TestAuthService_Login_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	merchantID := uuid.New()
	accountID := uuid.New()

	account := &domain.Account{ID: accountID, MerchantID: merchantID, PasswordDigest: "hash_password", APIKeyHash: "hash_apikey"}
	d.accountRepo.EXPECT().GetByUsername(ctx, "acme").Return(account, nil)
	d.hash.EXPECT().VerifyPassword("s3cret", "hash_password").Return(true)
	d.keyGen.EXPECT().Generate(apiKeyPrefix).Return("mch_live_newkey", nil)
	d.hash.EXPECT().HashPassword("mch_live_newkey").Return("hash_newkey")
	d.accountRepo.EXPECT().UpdateAPIKeyHash(ctx, accountID, "hash_newkey").Return(nil)
	d.envelope.EXPECT().Seal(merchantID.String(), "mch_live_newkey").Return(ports.APIKeyEnvelope{CiphertextB64: "ct2"}, nil)

	env, err := d.svc.Login(ctx, "acme", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, accountID, env.AccountID)
}

func TestAuthService_Login_RoundTripsThroughRequireAPIKey(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	merchantID := uuid.New()
	accountID := uuid.New()

	account := &domain.Account{ID: accountID, MerchantID: merchantID, PasswordDigest: "hash_password", APIKeyHash: "hash_apikey"}
	d.accountRepo.EXPECT().GetByUsername(ctx, "acme").Return(account, nil)
	d.hash.EXPECT().VerifyPassword("s3cret", "hash_password").Return(true)
	d.keyGen.EXPECT().Generate(apiKeyPrefix).Return("mch_live_newkey", nil)
	d.hash.EXPECT().HashPassword("mch_live_newkey").Return("hash_newkey")
	d.accountRepo.EXPECT().UpdateAPIKeyHash(ctx, accountID, "hash_newkey").Return(nil)
	d.envelope.EXPECT().Seal(merchantID.String(), "mch_live_newkey").Return(ports.APIKeyEnvelope{CiphertextB64: "ct2"}, nil)

	_, err := d.svc.Login(ctx, "acme", "s3cret")
	require.NoError(t, err)

	// The raw key Login just rotated in must be the same one
	// RequireAPIKey's hash lookup would accept on the next request.
	d.hash.EXPECT().HashPassword("mch_live_newkey").Return("hash_newkey")
	d.accountRepo.EXPECT().GetByAPIKeyHash(ctx, "hash_newkey").Return(account, nil)

	got, err := d.svc.RequireAPIKey(ctx, "mch_live_newkey")
	require.NoError(t, err)
	assert.Equal(t, accountID, got.ID)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	d.accountRepo.EXPECT().GetByUsername(ctx, "acme").Return(nil, nil)

	env, err := d.svc.Login(ctx, "acme", "s3cret")
	assert.Nil(t, env)
	assertAppError(t, err, "AUTH_003")
}

func TestAuthService_RequireAPIKey_Unauthorized(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()

	account, err := d.svc.RequireAPIKey(ctx, "")
	assert.Nil(t, account)
	assertAppError(t, err, "AUTH_001")
}

func TestAuthService_RequireAPIKey_Success(t *testing.T) {
	d := setupAuthService(t)
	defer d.ctrl.Finish()
	ctx := context.Background()
	want := &domain.Account{ID: uuid.New()}

	d.hash.EXPECT().HashPassword("mch_live_rawkey").Return("hash_apikey")
	d.accountRepo.EXPECT().GetByAPIKeyHash(ctx, "hash_apikey").Return(want, nil)

	got, err := d.svc.RequireAPIKey(ctx, "mch_live_rawkey")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
}
