package httpserver

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/newsfold/news-service/internal/observability"
)

// clientLimiter tracks one token bucket per client address. Buckets idle
// past the eviction window are dropped so the map does not grow without
// bound under address churn.
type clientLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientBucket
	rps      rate.Limit
	burst    int
	lastSeen time.Duration
}

type clientBucket struct {
	limiter *rate.Limiter
	seen    time.Time
}

// newClientLimiter creates a limiter handing out burst-capable token buckets
// at the given sustained rate per client.
func newClientLimiter(rps float64, burst int) *clientLimiter {
	return &clientLimiter{
		clients:  make(map[string]*clientBucket),
		rps:      rate.Limit(rps),
		burst:    burst,
		lastSeen: 3 * time.Minute,
	}
}

// allow reports whether the client may proceed, consuming one token if so.
func (l *clientLimiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.clients[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[client] = b
	}
	b.seen = now

	// Opportunistic eviction riding on the lock we already hold.
	for addr, other := range l.clients {
		if now.Sub(other.seen) > l.lastSeen {
			delete(l.clients, addr)
		}
	}

	return b.limiter.Allow()
}

// rateLimitMiddleware rejects clients exceeding their per-address budget
// with 429 before any handler work happens.
func rateLimitMiddleware(limiter *clientLimiter, metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				client = r.RemoteAddr
			}

			if !limiter.allow(client) {
				if metrics != nil {
					metrics.RequestsRateLimited.Inc()
				}
				writeError(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
