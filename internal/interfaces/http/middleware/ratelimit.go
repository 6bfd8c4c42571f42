package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thriftwise/thriftwise/internal/domain/shared/party"
	"github.com/thriftwise/thriftwise/internal/infrastructure/ratelimit"
	"github.com/thriftwise/thriftwise/internal/shared/constants"
	"github.com/thriftwise/thriftwise/internal/shared/logger"
	"github.com/thriftwise/thriftwise/internal/shared/utils"
)

// PrincipalRateLimit bounds how often one principal may hit the wrapped endpoint. Callers
// without a principal are keyed by client IP. When the limiter backend fails the request is
// let through.
func PrincipalRateLimit(limiter ratelimit.RateLimiter, rule ratelimit.Rule, action string, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !rule.Enabled() {
			c.Next()
			return
		}

		key := "ratelimit:" + action + ":" + rateLimitSubject(c)
		allowed, err := limiter.Allow(c.Request.Context(), key, rule)
		if err != nil {
			log.Warnw("rate limiter unavailable, allowing request", "action", action, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rule.Window.Seconds())))
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		if remaining, err := limiter.GetRemaining(c.Request.Context(), key, rule); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}
		c.Next()
	}
}

func rateLimitSubject(c *gin.Context) string {
	if value, exists := c.Get(constants.ContextKeyPrincipal); exists {
		if principal, ok := value.(party.Ref); ok {
			return principal.String()
		}
	}
	return "ip:" + c.ClientIP()
}
