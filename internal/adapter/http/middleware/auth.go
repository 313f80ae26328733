package middleware

import (
	"payment-gateway-aggregator/internal/core/ports"
	"payment-gateway-aggregator/pkg/apperror"
	"payment-gateway-aggregator/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderAPIKey is the merchant authentication header (§6).
	HeaderAPIKey = "X-API-Key"
	// HeaderIdempotencyKey carries the client-supplied idempotency token.
	HeaderIdempotencyKey = "Idempotency-Key"

	// Context keys set once an API key has been validated.
	CtxAccountID  = "account_id"
	CtxMerchantID = "merchant_id"
	CtxAccount    = "account"
)

// APIKeyAuth gates merchant endpoints on C7.RequireAPIKey: reads X-API-Key,
// resolves the Account, and attaches merchant/account identity to the
// request context.
func APIKeyAuth(authSvc ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(HeaderAPIKey)
		account, err := authSvc.RequireAPIKey(c.Request.Context(), apiKey)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CtxAccountID, account.ID)
		c.Set(CtxMerchantID, account.MerchantID)
		c.Set(CtxAccount, account)
		c.Next()
	}
}

// RequireIdempotencyKey enforces §6's rule that mutating endpoints reject a
// missing or malformed Idempotency-Key with 400, before the idempotency
// cache lookup runs.
func RequireIdempotencyKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if !idempotencyKeyRe.MatchString(key) {
			response.Error(c, apperror.Validation("Idempotency-Key header must be 10-255 chars of [A-Za-z0-9_-]"))
			c.Abort()
			return
		}
		c.Next()
	}
}
