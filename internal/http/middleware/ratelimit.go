package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type windowCounter struct {
	start time.Time
	count int
}

var (
	memMu      sync.Mutex
	memWindows = make(map[string]*windowCounter)
)

// memoryAllow implements a fixed-window counter in process memory. Used as the
// fallback when Redis is not configured.
func memoryAllow(key string, maxRequests int, window time.Duration) bool {
	memMu.Lock()
	defer memMu.Unlock()

	now := time.Now()
	wc, ok := memWindows[key]
	if !ok || now.Sub(wc.start) > window {
		memWindows[key] = &windowCounter{start: now, count: 1}
		return true
	}
	wc.count++
	return wc.count <= maxRequests
}

// SimpleRateLimit limits clients by IP using the in-memory counter.
func SimpleRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !memoryAllow("ip:"+c.ClientIP(), maxRequests, window) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
