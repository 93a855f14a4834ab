package main

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientAddr is the host part of the peer address. Session cookies are under the client's control, the address
// is not.
func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type visitorLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorLimiters throttles assistant messages per client address. Entries unused for idleTTL are forgotten.
type visitorLimiters struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	visitors  map[string]*visitorLimiter
	lastSweep time.Time
}

func newVisitorLimiters(perSecond float64, burst int, idleTTL time.Duration) *visitorLimiters {
	return &visitorLimiters{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idleTTL:  idleTTL,
		visitors: map[string]*visitorLimiter{},
	}
}

// allow reports whether the visitor may send another message at now.
func (l *visitorLimiters) allow(visitor string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idleTTL {
		for key, v := range l.visitors {
			if now.Sub(v.lastSeen) > l.idleTTL {
				delete(l.visitors, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[visitor]
	if !ok {
		v = &visitorLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[visitor] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *visitorLimiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}
