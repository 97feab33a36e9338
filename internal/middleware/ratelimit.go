package middleware

import (
	"fmt"
	"strconv"
	"time"

	"ripple/internal/config"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimit returns a Fiber middleware enforcing the named action's policy
// from config.RatePolicies. It panics at setup time when the action has no
// registered policy so a route can never ship unthrottled by typo.
func RateLimit(limiter *ratelimit.Limiter, action string) fiber.Handler {
	policy, ok := config.RatePolicies[action]
	if !ok {
		panic(fmt.Sprintf("no rate policy registered for action %q", action))
	}
	return RateLimitWith(limiter, action, policy.Max, policy.Window)
}

// RateLimitWith returns a Fiber middleware enforcing max requests per window
// for the given action. It keys by authenticated userID when set in
// c.Locals("userID"), otherwise by remote IP, so signed-in users each get
// their own budget while anonymous callers behind one NAT share one.
func RateLimitWith(limiter *ratelimit.Limiter, action string, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var id string
		if uid, ok := c.Locals("userID").(uint); ok {
			id = fmt.Sprintf("%s:user:%d", action, uid)
		} else {
			id = fmt.Sprintf("%s:ip:%s", action, c.IP())
		}

		res := limiter.Limit(id, max, window)

		c.Set("X-RateLimit-Limit", strconv.Itoa(max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			observability.RateLimitRejections.WithLabelValues(action).Inc()
			retryAfter := time.Until(res.ResetAt)
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			return models.RespondWithError(c, models.NewRateLimitError(retryAfter))
		}

		return c.Next()
	}
}
