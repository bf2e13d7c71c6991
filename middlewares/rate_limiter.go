package middlewares

import (
	"sync"
	"time"

	"github.com/etceter4/littlelemon/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	idleTTL   time.Duration
	visitors  map[string]*visitor
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		idleTTL:  3 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

// NewStrictRateLimiter is meant for the credential endpoints: perMinute
// attempts per minute per IP.
func NewStrictRateLimiter(perMinute int) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &RateLimiter{
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		idleTTL:  10 * time.Minute,
		visitors: make(map[string]*visitor),
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.idleTTL {
		rl.sweep(now)
	}

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup forgets visitors idle for longer than the limiter's idle TTL.
func (rl *RateLimiter) Cleanup(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.sweep(now)
}

// sweep runs with mu held.
func (rl *RateLimiter) sweep(now time.Time) int {
	rl.lastSweep = now
	removed := 0
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(utils.StatusFor(utils.KindThrottled), utils.JSONResponse{
				Status:  false,
				Message: "Request was throttled.",
				Kind:    utils.KindThrottled,
			})
			return
		}
		c.Next()
	}
}
