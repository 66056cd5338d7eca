package http

import (
	"context"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-notification-service/internal/ratelimit"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// Limiter decides whether an identity may proceed.
type Limiter interface {
	Allow(ctx context.Context, identity string) (ratelimit.Decision, error)
}

// rateLimitMiddleware keys requests by client IP. Limiter errors let the request through.
func rateLimitMiddleware(limiter Limiter, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if decision.Limit > 0 {
			c.Set("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		}
		if decision.Allowed {
			return c.Next()
		}

		retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return apperrors.NewRateLimited("Too many login attempts", map[string]any{"retryAfterSeconds": retryAfter})
	}
}
