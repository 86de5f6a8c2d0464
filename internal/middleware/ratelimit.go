package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tadreeb/academy/internal/pkg/apperrors"
	"github.com/tadreeb/academy/internal/pkg/logger"
	"github.com/tadreeb/academy/internal/pkg/ratelimit"
)

// RateLimit rejects clients that exceed the limiter's budget with 429 and Retry-After.
func RateLimit(limiter *ratelimit.Limiter, trustProxyHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := ratelimit.ClientIP(c, trustProxyHeaders)

		ok, retryAfter := limiter.Allow(ip)
		if !ok {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			logger.Warn().Str("ip", ip).Str("path", c.Request.URL.Path).Msg("Rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(seconds))
			HandleAPIError(c, apperrors.ErrRateLimited)
			return
		}

		c.Next()
	}
}
