package middleware

import (
	"sync"

	"vidhub-go/internal/api/response"
	"vidhub-go/internal/config"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const defaultLimiterCacheSize = 10000

// ipLimiters 按客户端 IP 维护令牌桶，最久未访问的 IP 会被淘汰
type ipLimiters struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *rate.Limiter]
	rps   rate.Limit
	burst int
}

func newIPLimiters(cfg *config.RateLimitConfig) (*ipLimiters, error) {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultLimiterCacheSize
	}
	cache, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, err
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &ipLimiters{cache: cache, rps: rate.Limit(cfg.RPS), burst: burst}, nil
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.cache.Get(ip); ok {
		return limiter
	}
	limiter := rate.NewLimiter(l.rps, l.burst)
	l.cache.Add(ip, limiter)
	return limiter
}

// RateLimit 单 IP 限流，超出时返回 429
func RateLimit(cfg *config.RateLimitConfig) (gin.HandlerFunc, error) {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }, nil
	}

	limiters, err := newIPLimiters(cfg)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			response.TooManyRequests(c, "请求过于频繁，请稍后再试")
			c.Abort()
			return
		}
		c.Next()
	}, nil
}
