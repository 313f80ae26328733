package middleware

import (
"fmt"
"strconv"
"time"

redisStore "payment-gateway-aggregator/internal/adapter/storage/redis"
"payment-gateway-aggregator/pkg/apperror"
"payment-gateway-aggregator/pkg/response"

"github.com/gin-gonic/gin"
"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
Limit  int64
Window time.Duration
}

// DefaultRateLimitRules returns the rate limits per endpoint group carried
// over from the source gateway's own limits, regrouped onto this gateway's
// payment initialize, refund and read endpoints, merchant signup/login, and
// webhooks.
func DefaultRateLimitRules() map[string]RateLimitRule {
return map[string]RateLimitRule{
"payments_initialize": {Limit: 100, Window: time.Minute},
"payments_refund":     {Limit: 30, Window: time.Minute},
"payments_read":       {Limit: 300, Window: time.Minute},
"merchants_login":     {Limit: 10, Window: time.Minute},
"merchants_signup":    {Limit: 5, Window: time.Hour},
"webhooks":            {Limit: 600, Window: time.Minute},
}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
return func(c *gin.Context) {
identifier := extractIdentifier(c)
key := fmt.Sprintf("%s:%s", identifier, group)

result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
if err != nil {
log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
c.Next()
return
}

// Always set rate limit headers
c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

if !result.Allowed {
retryAfter := result.ResetAt - time.Now().Unix()
if retryAfter < 1 {
retryAfter = 1
}
c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
response.Error(c, apperror.ErrRateLimitExceeded())
c.Abort()
return
}

c.Next()
}
}

// extractIdentifier determines the rate limit key source: the API key when
// present (merchant-scoped routes), falling back to the caller's IP for
// unauthenticated routes (signup, login, webhooks).
func extractIdentifier(c *gin.Context) string {
if ak := c.GetHeader(HeaderAPIKey); ak != "" {
return ak
}
if mid, exists := c.Get(CtxMerchantID); exists {
return fmt.Sprintf("%v", mid)
}
return c.ClientIP()
}
