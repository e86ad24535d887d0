package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/recruitment-tracker/internal/dtos"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// MemoryLimiter counts requests per key in fixed windows.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{buckets: make(map[string]*rateBucket), now: time.Now}
}

func (l *MemoryLimiter) Allow(key string, limit int, window time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	bucket, ok := l.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		l.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

// RateLimit rejects requests with 429 once keyFn's key exceeds limit within window.
// A nil limiter or a non-positive limit disables it.
func RateLimit(limiter Limiter, keyFn func(*gin.Context) string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}
		if !limiter.Allow(key, limit, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dtos.ErrorResponse{
				StatusCode: http.StatusTooManyRequests,
				Error:      http.StatusText(http.StatusTooManyRequests),
				Message:    "Too many applications submitted, try again later",
			})
			return
		}
		c.Next()
	}
}

// ClientIPKey scopes a limit to the caller's address and the route.
func ClientIPKey(prefix string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		return prefix + ":" + c.ClientIP()
	}
}
