package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/pkg/errors"
	"github.com/sabrinaansede/apphib/pkg/logger"
	"github.com/sabrinaansede/apphib/pkg/response"
)

type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP. A nil limiter disables it.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, wait := limiter.Allow(ip)
			if !ok {
				logger.Warn("Rate limit exceeded for IP %s", ip)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Demasiadas solicitudes, intentá de nuevo en un momento"))
			}
			return next(c)
		}
	}
}
