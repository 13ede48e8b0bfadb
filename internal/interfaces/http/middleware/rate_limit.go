package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RateLimit allows limit requests per client IP per minute, counted in Redis.
// When Redis is unavailable requests are let through.
func RateLimit(limit int, redisClient *redis.Client, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		// One counter per client IP
		key := fmt.Sprintf("rate_limit:%s", c.ClientIP())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		// Requests seen this minute
		current, err := redisClient.Get(ctx, key).Int()
		if err != nil && !errors.Is(err, redis.Nil) {
			logger.WithError(err).Warn("Rate limiter unavailable")
			c.Next()
			return
		}

		// Check if limit exceeded
		if current >= limit {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": 60,
			})
			return
		}

		// Count this request; the window starts with the first one
		pipe := redisClient.Pipeline()
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, time.Minute)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.WithError(err).Warn("Failed to count request for rate limiting")
		}

		// Rate limit headers
		remaining := limit - current - 1
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))

		c.Next()
	}
}
