package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"vidsocial/domain/dto"
	"vidsocial/infrastructure/logger"
)

const visitorIdle = 5 * time.Minute

type IPRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows rps requests per second per client IP with the
// given burst. A non-positive rps disables limiting.
func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > time.Minute {
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > visitorIdle {
				delete(l.visitors, k)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (l *IPRateLimiter) Handler() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if l.rps <= 0 {
			ctx.Next()
			return
		}
		ip := ctx.ClientIP()
		if !l.limiter(ip).Allow() {
			logger.FromContext(ctx.Request.Context()).WithField("ip", ip).WithField("path", ctx.FullPath()).Warn("Rate limit exceeded")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorRes(http.StatusTooManyRequests, "Too many requests, please try again later", nil))
			return
		}
		ctx.Next()
	}
}
