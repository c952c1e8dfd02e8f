package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"candlepin/src/app/http/response"
)

// idleLimiterTTL is how long an unused client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per client address.
type limiterSet struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*clientLimiter
	sweep   time.Time
}

func newLimiterSet(rps float64, burst int) *limiterSet {
	return &limiterSet{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
	}
}

func (s *limiterSet) allow(key string, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at.Sub(s.sweep) > idleLimiterTTL {
		for k, cl := range s.clients {
			if at.Sub(cl.lastSeen) > idleLimiterTTL {
				delete(s.clients, k)
			}
		}
		s.sweep = at
	}

	cl, ok := s.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(s.rps, s.burst)}
		s.clients[key] = cl
	}
	cl.lastSeen = at
	return cl.limiter.AllowN(at, 1)
}

// RateLimit throttles each client IP to rps requests per second with the
// given burst. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	set := newLimiterSet(rps, burst)

	return func(c *gin.Context) {
		if !set.allow(c.ClientIP(), time.Now()) {
			c.Header("Retry-After", "1")
			response.TooManyRequests(c, GetRequestID(c))
			c.Abort()
			return
		}
		c.Next()
	}
}
