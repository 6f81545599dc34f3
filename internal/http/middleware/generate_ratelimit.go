package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserRateLimit limits authenticated requests per user id instead of per IP.
// Must run after JWT(). Used to cap how often a user can trigger AI
// generation, which is the expensive endpoint.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextUserID)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		userID, ok := v.(uuid.UUID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		key := "gen_rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + userID.String()

		allowed, ok := redisAllow(c.Request.Context(), key, maxRequests, window)
		if !ok {
			allowed = memoryAllow(key, maxRequests, window)
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		if !allowed {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "generation rate limit exceeded, try again later",
			})
			return
		}
		c.Next()
	}
}
