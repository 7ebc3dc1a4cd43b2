package transport

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// maxTrackedClients caps the throttle map; past it, idle clients are swept.
const maxTrackedClients = 10000

// Throttle is a sliding-window request limiter keyed by client address.
type Throttle struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	hits   map[string][]time.Time
	now    func() time.Time
}

func NewThrottle(window time.Duration, limit int) *Throttle {
	return &Throttle{
		window: window,
		limit:  limit,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a hit for the client and reports whether the request is
// within the window limit.
func (t *Throttle) Allow(client string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	fresh := t.hits[client][:0]
	for _, hit := range t.hits[client] {
		if now.Sub(hit) < t.window {
			fresh = append(fresh, hit)
		}
	}
	fresh = append(fresh, now)
	t.hits[client] = fresh

	if len(t.hits) > maxTrackedClients {
		t.sweepLocked(now)
	}

	return len(fresh) <= t.limit
}

// sweepLocked drops clients whose every hit has aged out of the window.
func (t *Throttle) sweepLocked(now time.Time) {
	for client, hits := range t.hits {
		expired := true
		for _, hit := range hits {
			if now.Sub(hit) < t.window {
				expired = false
				break
			}
		}
		if expired {
			delete(t.hits, client)
		}
	}
}

func (t *Throttle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !t.Allow(host) {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
