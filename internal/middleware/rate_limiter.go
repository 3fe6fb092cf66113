package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter implements a simple in-memory per-IP rate limiter
type RateLimiter struct {
	ipLimits map[string]*ipLimit
	mu       sync.RWMutex

	maxRequests int
	window      time.Duration
}

type ipLimit struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		ipLimits:    make(map[string]*ipLimit),
		maxRequests: maxRequests,
		window:      window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Middleware rejects requests from IPs that exceeded the window budget.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de requêtes. Réessayez dans un instant.",
				"code":  "RATE_LIMIT_EXCEEDED",
			})
			return
		}
		c.Next()
	}
}

// Allow checks if the IP has exceeded its rate limit
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := rl.ipLimits[ip]
	if !exists || now.After(limit.resetTime) {
		rl.ipLimits[ip] = &ipLimit{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= rl.maxRequests {
		return false
	}

	limit.requests++
	return true
}

// Remaining returns remaining requests for the IP
func (rl *RateLimiter) Remaining(ip string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()

	limit, exists := rl.ipLimits[ip]
	if !exists || time.Now().After(limit.resetTime) {
		return rl.maxRequests
	}

	remaining := rl.maxRequests - limit.requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, ip)
			}
		}
		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.ipLimits = make(map[string]*ipLimit)
}
