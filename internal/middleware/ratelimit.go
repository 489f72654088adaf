package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	limit "github.com/yangxikun/gin-limit-by-key"
	"golang.org/x/time/rate"
)

// limiters for idle clients are dropped after this long
const limiterTTL = time.Hour

// RateLimit allows perMinute requests per client IP with a burst of the same size.
// perMinute <= 0 disables the limit.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	every := time.Minute / time.Duration(perMinute)
	return limit.NewRateLimiter(
		func(c *gin.Context) string {
			return c.ClientIP() + c.FullPath()
		},
		func(c *gin.Context) (*rate.Limiter, time.Duration) {
			return rate.NewLimiter(rate.Every(every), perMinute), limiterTTL
		},
		func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"detail": "Too many requests, slow down"})
		},
	)
}
