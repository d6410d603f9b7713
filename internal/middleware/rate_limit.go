package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"QuoteDesk/internal/service/ratelimit"
	xhttp "QuoteDesk/pkg/http"
	applogger "QuoteDesk/pkg/logger"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"

	rateLimitMessage = "Rate limit exceeded. Try again later."
)

// RateLimitConfig configures RateLimit.
type RateLimitConfig struct {
	Limiter ratelimit.Limiter
	Logger  *applogger.Logger
	// PathPrefix limits which requests are counted. Empty means all.
	PathPrefix string
	// KeyFunc extracts the client key. Defaults to the real client IP.
	KeyFunc func(c echo.Context) string
}

// RateLimit rejects clients over budget with 429. Limiter failures let the
// request through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Logger == nil {
		cfg.Logger = applogger.Nop()
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c echo.Context) string { return c.RealIP() }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Limiter == nil || !strings.HasPrefix(c.Request().URL.Path, cfg.PathPrefix) {
				return next(c)
			}

			key := cfg.KeyFunc(c)
			d, err := cfg.Limiter.Allow(c.Request().Context(), key)
			if err != nil {
				cfg.Logger.Warn("rate limiter unavailable, allowing request",
					applogger.String("client", key),
					applogger.Error(err),
				)
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(d.Limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(d.Remaining))
			h.Set(HeaderRateLimitReset, strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				retry := int(time.Until(d.ResetAt).Seconds() + 0.999)
				if retry < 1 {
					retry = 1
				}
				h.Set(HeaderRetryAfter, strconv.Itoa(retry))
				cfg.Logger.Debug("rate limited",
					applogger.String("client", key),
					applogger.String("path", c.Request().URL.Path),
				)
				return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError(rateLimitMessage))
			}
			return next(c)
		}
	}
}
