package domain

// IdempotencyRecord is what C4's cache stores per client-supplied key: a
// full memoised HTTP response, replayed byte-for-byte on a repeat request.
type IdempotencyRecord struct {
	StatusCode int    `json:"status_code"`
	Body       []byte `json:"body"`
}

// IdempotencyCacheKey builds the cache key for a client idempotency key.
// The "idempotency:" prefix is applied by the cache implementation itself
// (mirrors the Redis store's own prefixing convention); callers just pass
// the raw client key through.
func IdempotencyCacheKey(clientKey string) string {
	return clientKey
}
