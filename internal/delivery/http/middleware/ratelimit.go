package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/landmark-service/internal/config"
	"github.com/landmark-service/internal/pkg/errors"
	"github.com/landmark-service/internal/pkg/utils"
	"go.uber.org/zap"
)

// rateLimitEntry tracks one client's request count inside the current
// fixed window.
type rateLimitEntry struct {
	count         int
	windowResetAt time.Time
}

// RateLimiter - fixed-window per-client request limiter. State is
// in-memory only: throttling is best-effort and does not survive a
// restart. Expired entries are removed by a periodic sweep so the map
// stays bounded.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	max     int
	window  time.Duration
	logger  *zap.Logger
	stop    chan struct{}
	stopped sync.Once
}

// NewRateLimiter - creates a new RateLimiter.
func NewRateLimiter(cfg *config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		max:     cfg.MaxRequests,
		window:  cfg.Window,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Handle gates a request on the client's source address. The address
// fiber reports honors the configured ProxyHeader, which is how proxied
// deployments pick their key.
func (l *RateLimiter) Handle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, retryAfter := l.allowAt(c.IP(), time.Now())
		if !allowed {
			l.logger.Warn("Rate limit exceeded",
				zap.String("client", c.IP()),
				zap.Int("retry_after", retryAfter))
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return utils.SendError(c, errors.ErrRateLimited.WithRetryAfter(retryAfter))
		}
		return c.Next()
	}
}

// allowAt decides admit/reject for a client key at a given instant.
// A fresh or expired window resets the entry to count=1 and admits;
// within the window the count is incremented up to the cap.
func (l *RateLimiter) allowAt(key string, now time.Time) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok || !now.Before(entry.windowResetAt) {
		l.entries[key] = &rateLimitEntry{
			count:         1,
			windowResetAt: now.Add(l.window),
		}
		return true, 0
	}

	if entry.count < l.max {
		entry.count++
		return true, 0
	}

	retryAfter := int(math.Ceil(entry.windowResetAt.Sub(now).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter
}

// StartSweeper removes expired entries on an interval until Stop is
// called.
func (l *RateLimiter) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				removed := l.sweep(time.Now())
				if removed > 0 {
					l.logger.Debug("Swept expired rate limit entries", zap.Int("removed", removed))
				}
			case <-l.stop:
				return
			}
		}
	}()
}

// Stop terminates the sweeper goroutine.
func (l *RateLimiter) Stop() {
	l.stopped.Do(func() {
		close(l.stop)
	})
}

func (l *RateLimiter) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if !now.Before(entry.windowResetAt) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}
