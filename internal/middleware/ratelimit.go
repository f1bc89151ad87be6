package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/franciscosanchezn/gin-shop-api/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor holds the rate limiter and the last time it was seen
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client ip
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter allows perSecond requests per client with the given burst
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  3 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastSweep) > time.Minute {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// Middleware rejects callers that exceed their budget with 429
func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			abortWithError(c, http.StatusTooManyRequests, models.ErrTooManyRequest, "Too many requests, slow down")
			return
		}
		c.Next()
	}
}
