package handler

import (
	"payment-gateway-aggregator/internal/adapter/http/middleware"
	redisStore "payment-gateway-aggregator/internal/adapter/storage/redis"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds every dependency SetupRouter needs to wire the full
// route table.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	PaymentSvc     ports.PaymentService
	WebhookSvc     ports.WebhookService
	IdempotencyCache ports.IdempotencyCache
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with every route and middleware
// the core slice (C8) exposes.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// §6: all merchant-facing and webhook routes live under the versioned
	// /api/v1 prefix. Health and swagger stay unversioned ambient surfaces.
	v1 := r.Group("/api/v1")

	// --- Merchant signup/login (public, §4.8) ---
	merchantHandler := NewMerchantHandler(deps.AuthSvc)
	merchants := v1.Group("/merchants")
	{
		merchants.POST("/signup", rl("merchants_signup"), merchantHandler.Signup)
		merchants.POST("/login", rl("merchants_login"), merchantHandler.Login)
	}

	// --- Webhooks (public, no auth — authenticity is the adapter's job) ---
	webhookHandler := NewWebhookHandler(deps.WebhookSvc)
	v1.POST("/webhooks/:provider", rl("webhooks"), webhookHandler.Receive)

	// --- Payments (API-key authenticated, C7) ---
	apiKeyAuth := middleware.APIKeyAuth(deps.AuthSvc)
	paymentHandler := NewPaymentHandler(deps.PaymentSvc)
	payments := v1.Group("/payments", apiKeyAuth)
	{
		payments.POST("/initialize",
			rl("payments_initialize"),
			middleware.RequireIdempotencyKey(),
			middleware.IdempotencyReplay(deps.IdempotencyCache, deps.Logger),
			paymentHandler.Initialize,
		)
		payments.POST("/reconcile", rl("payments_read"), paymentHandler.Reconcile)
		payments.POST("/:id/verify", rl("payments_read"), paymentHandler.Verify)
		payments.POST("/:id/refund", rl("payments_refund"), paymentHandler.Refund)
		payments.GET("/:id", rl("payments_read"), paymentHandler.Get)
		payments.GET("", rl("payments_read"), paymentHandler.List)
	}

	return r
}
