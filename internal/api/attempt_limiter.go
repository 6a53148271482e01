package api

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	loginAttemptsLimit  = 8
	loginAttemptsWindow = 15 * time.Minute
)

// attemptLimiter allows at most limit failures per key within window. Keys
// whose failures have all expired are swept at most once per window.
type attemptLimiter struct {
	mu        sync.Mutex
	limit     int
	window    time.Duration
	failures  map[string][]time.Time
	lastSweep time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		failures: make(map[string][]time.Time),
	}
}

// retryAfter reports how long key stays locked out. Zero means the next
// attempt is allowed.
func (limiter *attemptLimiter) retryAfter(key string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.pruneLocked(key, now)
	if limiter.limit <= 0 || len(recent) < limiter.limit {
		return 0
	}
	unlockAt := recent[len(recent)-limiter.limit].Add(limiter.window)
	return unlockAt.Sub(now)
}

func (limiter *attemptLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if now.Sub(limiter.lastSweep) >= limiter.window {
		limiter.sweepLocked(now)
	}
	limiter.failures[key] = append(limiter.pruneLocked(key, now), now)
}

func (limiter *attemptLimiter) clear(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) trackedKeys() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	return len(limiter.failures)
}

func (limiter *attemptLimiter) sweepLocked(now time.Time) {
	for key := range limiter.failures {
		limiter.pruneLocked(key, now)
	}
	limiter.lastSweep = now
}

// pruneLocked drops failures older than the window, in place.
func (limiter *attemptLimiter) pruneLocked(key string, now time.Time) []time.Time {
	failures := limiter.failures[key]
	threshold := now.Add(-limiter.window)
	kept := 0
	for kept < len(failures) && !failures[kept].After(threshold) {
		kept++
	}
	recent := failures[kept:]

	if len(recent) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = recent
	return recent
}

// retryAfterSeconds rounds a lockout up to whole seconds for the Retry-After header.
func retryAfterSeconds(wait time.Duration) string {
	seconds := int(math.Ceil(wait.Seconds()))
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}

func loginLimiterKey(c *fiber.Ctx, email string) string {
	ip := strings.TrimSpace(c.IP())
	if ip == "" {
		ip = "unknown"
	}
	return ip + "|" + strings.ToLower(strings.TrimSpace(email))
}
