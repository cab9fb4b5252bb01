package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"calboard/internal/config"
	"calboard/pkg/utils"

	"golang.org/x/time/rate"
)

const (
	DefaultRequests = 20 // steady state refill rate per window
	BurstSize       = 50 // bucket size for traffic spikes

	VisitorTTL      = 5 * time.Minute // inactive IPs are forgotten after this
	CleanupInterval = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	enabled  bool
}

func NewRateLimiter(conf config.RateLimitConfig) *RateLimiter {
	windowDuration, _ := time.ParseDuration(conf.Window)
	if windowDuration <= 0 {
		windowDuration = time.Second
	}

	requests := conf.Requests
	if requests <= 0 {
		requests = DefaultRequests
	}

	burst := conf.Burst
	if burst <= 0 {
		burst = BurstSize
	}

	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(requests) / windowDuration.Seconds()),
		burst:    burst,
		enabled:  conf.Enabled,
	}
}

// RunCleanup removes stale visitors until ctx is done.
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.purge(VisitorTTL)
		}
	}
}

func (rl *RateLimiter) purge(ttl time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	removed := 0
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > ttl {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Middleware blocks excessive requests with a 429 JSON response.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.enabled {
			next.ServeHTTP(w, r)
			return
		}

		if !rl.getVisitor(utils.GetRealIP(r)).Allow() {
			utils.WriteError(
				w,
				http.StatusTooManyRequests,
				utils.ErrRequestRateLimitExceeded,
				"Too many requests. Please wait a moment.",
			)
			return
		}

		next.ServeHTTP(w, r)
	})
}
