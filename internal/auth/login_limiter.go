package auth

import (
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// LoginLimiter throttles credential endpoints per client IP.
type LoginLimiter struct {
	limit  rate.Limit
	burst  int
	idle   time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	lastSweep time.Time
}

// NewLoginLimiter allows perMinute attempts per IP with an equal burst.
func NewLoginLimiter(perMinute int, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if perMinute <= 0 {
		perMinute = 30
	}
	return &LoginLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		idle:     10 * time.Minute,
		logger:   logger,
		now:      time.Now,
		limiters: make(map[string]*ipLimiter),
	}
}

// Handle rejects the request with 429 once the caller's budget is spent.
func (l *LoginLimiter) Handle(c *fiber.Ctx) error {
	ip := c.IP()
	if l.get(ip).AllowN(l.now(), 1) {
		return c.Next()
	}

	retryAfter := int(math.Ceil(1.0 / float64(l.limit)))
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
	l.logger.Warn("login rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
	return apperrors.NewTooManyAttempts("too many login attempts, try again later")
}

// Size reports the number of tracked IPs.
func (l *LoginLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func (l *LoginLimiter) get(ip string) *rate.Limiter {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > l.idle {
		for key, entry := range l.limiters {
			if now.Sub(entry.lastAccess) > l.idle {
				delete(l.limiters, key)
			}
		}
		l.lastSweep = now
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}
