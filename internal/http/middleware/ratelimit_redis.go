package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the rate
// limiting middleware. If addr is empty or the ping fails, the client stays
// nil and the middleware falls back to the in-memory counter.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

// redisAllow increments a fixed-window counter in Redis. Returns allowed and
// whether Redis answered; callers fail over to memory when ok is false.
func redisAllow(ctx context.Context, key string, maxRequests int, window time.Duration) (allowed, ok bool) {
	if redisClient == nil {
		return false, false
	}
	val, err := redisClient.Incr(ctx, key).Result()
	if err != nil {
		return false, false
	}
	if val == 1 {
		redisClient.Expire(ctx, key, window)
	}
	return val <= int64(maxRequests), true
}

// RedisRateLimit limits clients by IP using a fixed window in Redis, falling
// back to the in-memory counter when Redis is unavailable.
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()

		allowed, ok := redisAllow(c.Request.Context(), key, maxRequests, window)
		if !ok {
			allowed = memoryAllow(key, maxRequests, window)
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		if !allowed {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
