package middleware

import (
	"github.com/labstack/echo/v4"

	"freelancebid/internal/infrastructure/ratelimit"
	"freelancebid/pkg/errors"
	"freelancebid/pkg/logger"
	"freelancebid/pkg/response"
)

// RateLimit limits requests per client IP under the given action's policy.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !limiter.Allow(ip, action) {
				logger.Warn("Rate limit exceeded for %s on %s", ip, c.Path())
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}
			return next(c)
		}
	}
}
