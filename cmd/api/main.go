package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-gateway-aggregator/config"
	amqpAdapter "payment-gateway-aggregator/internal/adapter/amqp"
	httpHandler "payment-gateway-aggregator/internal/adapter/http/handler"
	pgStorage "payment-gateway-aggregator/internal/adapter/storage/postgres"
	redisStorage "payment-gateway-aggregator/internal/adapter/storage/redis"
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/internal/provider"
	"payment-gateway-aggregator/internal/service"
	"payment-gateway-aggregator/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("starting payment gateway aggregator")

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	dlq, closeDLQ, err := amqpAdapter.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.DeadLetterRK, cfg.AMQP.Enabled)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to dial AMQP broker")
	}
	defer closeDLQ()
	if cfg.AMQP.Enabled {
		log.Info().Msg("AMQP dead-letter publisher connected")
	} else {
		log.Info().Msg("AMQP dead-letter publisher disabled")
	}

	// Repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	accountRepo := pgStorage.NewAccountRepo(pool)
	providerConfigRepo := pgStorage.NewProviderConfigRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	webhookRepo := pgStorage.NewWebhookRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis-backed stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Crypto primitives (C1)
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryption service")
	}
	envelopeSvc := service.NewAESGCMEnvelopeService()
	hashSvc := service.NewSHA256HashService()
	keyGen := service.NewRandomAPIKeyGenerator()

	// Core services
	registry := provider.NewRegistry()
	auditSvc := service.NewDefaultAuditService(auditRepo)
	providerConfigSvc := service.NewDefaultProviderConfigService(providerConfigRepo, encSvc)
	authSvc := service.NewDefaultAuthService(merchantRepo, accountRepo, transactor, hashSvc, keyGen, envelopeSvc)
	paymentSvc := service.NewDefaultPaymentService(txRepo, auditSvc, transactor, providerConfigSvc, registry)
	webhookSvc := service.NewDefaultWebhookService(webhookRepo, txRepo, auditSvc, transactor, providerConfigSvc, registry, dlq)

	// Health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Background webhook retry sweep: RetryDue is idempotent and safe to
	// call on a timer instead of the external scheduler this core slice
	// assumes (§1's retry_due contract).
	go runRetrySweep(ctx, webhookSvc, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:          authSvc,
		PaymentSvc:       paymentSvc,
		WebhookSvc:       webhookSvc,
		IdempotencyCache: idempotencyCache,
		RateLimitStore:   rateLimitStore,
		HealthCheckers:   []ports.HealthChecker{pgHealth, redisHealth},
		Logger:           log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// runRetrySweep polls RetryDue every 30s for the life of the process. C6
// itself only exposes the idempotent operation (§1's Non-goals: no
// internal scheduler); this loop is the surrounding system §1 assumes.
func runRetrySweep(ctx context.Context, webhookSvc ports.WebhookService, log zerolog.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := webhookSvc.RetryDue(ctx, time.Now().UTC())
			if err != nil {
				log.Warn().Err(err).Msg("webhook retry sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("retried", n).Msg("webhook retry sweep")
			}
		}
	}
}
