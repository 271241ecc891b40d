package middleware

import (
	"net/http"
	"sync"
	"time"

	"sorty/internal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowEntry counts requests from one IP inside a fixed window.
type windowEntry struct {
	count     int
	windowEnd time.Time
}

// limiter is a fixed-window per-IP counter.
type limiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*windowEntry
}

func newLimiter(limit int, window time.Duration) *limiter {
	return &limiter{limit: limit, window: window, entries: make(map[string]*windowEntry)}
}

// allow records one hit for ip and reports whether it is within the limit,
// along with the end of the current window.
func (l *limiter) allow(ip string, now time.Time) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// purge drops entries whose window has elapsed and returns how many were removed.
func (l *limiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			n++
		}
	}
	return n
}

func (l *limiter) middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, end := l.allow(c.ClientIP(), time.Now())
		if !ok {
			c.Header("Retry-After", end.UTC().Format(http.TimeFormat))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, envelope.Error(msg))
			return
		}
		c.Next()
	}
}

var (
	limitersMu sync.Mutex
	limiters   []*limiter
	purgeOnce  sync.Once
)

const purgeInterval = 5 * time.Minute

func register(l *limiter) *limiter {
	limitersMu.Lock()
	limiters = append(limiters, l)
	limitersMu.Unlock()
	purgeOnce.Do(func() { go purgeExpiredEntries() })
	return l
}

// LoginRateLimiter limits login and refresh attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return register(newLimiter(20, time.Minute)).
		middleware("Demasiados intentos de login. Intente en 1 minuto.")
}

// RateLimiter returns a general-purpose per-IP limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return register(newLimiter(limit, window)).
		middleware("Demasiadas solicitudes. Intente nuevamente en un momento.")
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for now := range ticker.C {
		limitersMu.Lock()
		purged := 0
		for _, l := range limiters {
			purged += l.purge(now)
		}
		limitersMu.Unlock()

		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}
