package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL         = 10 * time.Minute
	limiterCleanupInterval = time.Minute
)

type userLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a token bucket per user. A zero rate disables it.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu          sync.Mutex
	users       map[int64]*userLimiter
	lastCleanup time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// user with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
		users: make(map[int64]*userLimiter),
	}
}

// Enabled reports whether limits are enforced.
func (l *RateLimiter) Enabled() bool {
	return l != nil && l.rps > 0
}

// Allow reports whether userID may make a request at now.
func (l *RateLimiter) Allow(userID int64, now time.Time) bool {
	if !l.Enabled() {
		return true
	}

	l.mu.Lock()
	u, ok := l.users[userID]
	if !ok {
		burst := l.burst
		if burst <= 0 {
			burst = 1
		}
		u = &userLimiter{limiter: rate.NewLimiter(l.rps, burst)}
		l.users[userID] = u
	}
	u.lastSeen = now

	if l.lastCleanup.IsZero() || now.Sub(l.lastCleanup) > limiterCleanupInterval {
		for id, ul := range l.users {
			if now.Sub(ul.lastSeen) > limiterIdleTTL {
				delete(l.users, id)
			}
		}
		l.lastCleanup = now
	}
	l.mu.Unlock()

	return u.limiter.AllowN(now, 1)
}
