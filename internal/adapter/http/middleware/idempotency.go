package middleware

import (
	"bytes"
	"net/http"
	"regexp"
	"time"

	"payment-gateway-aggregator/internal/core/domain"
	"payment-gateway-aggregator/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var idempotencyKeyRe = regexp.MustCompile(`^[A-Za-z0-9_-]{10,255}$`)

// defaultIdempotencyTTL matches §4.4's 86400s default cache TTL.
const defaultIdempotencyTTL = 24 * time.Hour

// bodyCapture buffers the response body so a successful response can be
// memoised in the idempotency cache after the handler returns.
type bodyCapture struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyReplay is C4's fast-path cache: on a cache hit, replays the
// first response byte-for-byte with its original status code without
// invoking the handler; on a miss, runs the handler and caches a
// successful (2xx) response under the client's key. The durable Transaction
// unique index on idempotency_key (C5) is the correctness guarantee of
// last resort when this cache has evicted or was never populated — see
// §4.4/§9.
func IdempotencyReplay(cache ports.IdempotencyCache, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := domain.IdempotencyCacheKey(c.GetHeader(HeaderIdempotencyKey))

		record, err := cache.Get(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Msg("idempotency cache get failed, proceeding without replay")
		} else if record != nil {
			c.Data(record.StatusCode, "application/json; charset=utf-8", record.Body)
			c.Abort()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = capture
		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		record = &domain.IdempotencyRecord{
			Body:       capture.buf.Bytes(),
			StatusCode: status,
		}
		if err := cache.Set(c.Request.Context(), key, record, defaultIdempotencyTTL); err != nil {
			log.Warn().Err(err).Msg("idempotency cache set failed")
		}
	}
}
