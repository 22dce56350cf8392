package middleware

import (
	"fmt"
	"sync"
	"time"

	"chef-express/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bucket 單一用戶端的令牌桶
type bucket struct {
	tokens   float64
	lastTime time.Time
}

// RateLimiter 依用戶端 IP 分桶的限流器
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64 // 每秒補充的令牌數
	window   time.Duration
	now      func() time.Time
}

// NewRateLimiter 創建新的限流器
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		window:   window,
		now:      time.Now,
	}
}

// Allow 檢查 key 是否還有可用令牌
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastTime: now}
		rl.buckets[key] = b
	}

	// 添加新令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.lastTime = now
	b.tokens += elapsed * rl.rate
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// prune 移除已經補滿的桶
func (rl *RateLimiter) prune() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastTime) > rl.window {
			delete(rl.buckets, key)
		}
	}
}

// Middleware 限流中間件
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	var calls int
	var mu sync.Mutex

	return func(c *gin.Context) {
		mu.Lock()
		calls++
		if calls%1000 == 0 {
			rl.prune()
		}
		mu.Unlock()

		if !rl.Allow(c.ClientIP()) {
			common.LogWarn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.window.Seconds())))
			common.WriteError(c, common.ErrTooManyRequests)
			return
		}

		c.Next()
	}
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(requests, window).Middleware()
}
