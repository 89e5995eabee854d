package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token-bucket limit applied per client IP.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// LoginLimit is the default profile for credential endpoints: tight enough
// to blunt brute forcing, loose enough for a user who mistypes a password.
var LoginLimit = RateLimitConfig{
	RequestsPerWindow: 10,
	Window:            time.Minute,
	Burst:             10,
}

// RateLimit returns middleware that limits requests per client IP using the
// given profile. Idle limiters are dropped once their bucket refills.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	perSecond := rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds())

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*rate.Limiter)
		lastCleanup = time.Now()
	)

	getLimiter := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		if time.Since(lastCleanup) > 5*time.Minute {
			for k, l := range limiters {
				if l.Tokens() >= float64(cfg.Burst) {
					delete(limiters, k)
				}
			}
			lastCleanup = time.Now()
		}

		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(perSecond, cfg.Burst)
			limiters[key] = l
		}
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !getLimiter(c.RealIP()).Allow() {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
