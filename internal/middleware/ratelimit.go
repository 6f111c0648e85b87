package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/BruksfildServices01/estate-listings/internal/logger"
)

const maxTrackedClients = 10000

type clientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func (l *clientLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= maxTrackedClients {
			l.limiters = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(l.rps, l.burst)
		l.limiters[key] = lim
	}
	return lim
}

// RateLimit allows rps requests per second per client IP, with bursts of
// burst requests.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := &clientLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}

	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			logger.FromContext(c.Request.Context()).Warn().
				Str("client_ip", c.ClientIP()).
				Msg("too many requests")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error_code": "too_many_requests",
				"message":    "Too many requests.",
				"success":    false,
			})
			return
		}
		c.Next()
	}
}
