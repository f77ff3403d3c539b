package middleware

import (
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"xrplutter/gateway/internal/config"
	"xrplutter/gateway/internal/metrics"
	"xrplutter/gateway/internal/repository"
	"xrplutter/gateway/pkg/response"
)

type rateBucket struct {
	Count int `json:"count"`
}

// RateLimit is a fixed-window counter over the TTL store, keyed by client
// identity and window bucket. The read-modify-write is intentionally
// non-atomic: two concurrent requests may both observe count N and write
// N+1, which is accepted as a tolerable approximation. On store failure the
// limiter fails open, trading strict enforcement for availability.
func RateLimit(store repository.TTLStore, cfg config.RateLimitConfig, logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	windowSec := cfg.WindowSeconds
	if windowSec <= 0 {
		windowSec = 10
	}
	maxReq := cfg.MaxRequests
	if maxReq <= 0 {
		maxReq = 20
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bucket := time.Now().Unix() / int64(windowSec)
		key := fmt.Sprintf("rl:%d:%s", bucket, clientIdentity(c))

		var current rateBucket
		raw, err := store.Get(ctx, key)
		if err != nil {
			logger.Debug("rate limit store read failed, failing open", zap.Error(err))
			c.Next()
			return
		}
		if raw != nil {
			// A record we cannot parse counts as an empty bucket.
			_ = json.Unmarshal(raw, &current)
		}
		current.Count++

		encoded, _ := json.Marshal(current)
		if err := store.Set(ctx, key, encoded); err != nil {
			logger.Debug("rate limit store write failed, failing open", zap.Error(err))
			c.Next()
			return
		}

		if current.Count > maxReq {
			m.RateLimited()
			response.TooManyRequests(c, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}

// clientIdentity prefers the first address in X-Forwarded-For, then the
// transport peer IP, then a shared "unknown" bucket. The peer's ephemeral
// port must not participate: a direct client would otherwise land in a fresh
// bucket on every reconnect.
func clientIdentity(c *gin.Context) string {
	if xf := c.GetHeader("X-Forwarded-For"); xf != "" {
		if first := strings.TrimSpace(strings.SplitN(xf, ",", 2)[0]); first != "" {
			return first
		}
	}
	if addr := c.Request.RemoteAddr; addr != "" {
		if host, _, err := net.SplitHostPort(addr); err == nil {
			return host
		}
		return addr
	}
	return "unknown"
}
