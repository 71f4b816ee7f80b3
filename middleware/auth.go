package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"meetcal/utils"
)

// JWTAuthMiddleware authenticates requests with a Bearer token. The token
// must both verify and match the hash cached at sign-in; a revoked or
// replaced token fails even when its signature is still valid.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"detail": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"detail": "Insufficient authorization",
			})
			return
		}

		authCache := utils.GetAuthCacheClient()
		cachedHash, err := authCache.Get(ctx, utils.AuthCachePrefix+userID).Result()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"detail": "Session expired, please sign in again",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": "error",
				"detail": "An error occurred. Please try again.",
			})
			return
		}
		if cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"detail": "Token mismatch",
			})
			return
		}

		// Sliding expiry: active users stay signed in.
		_ = authCache.Expire(ctx, utils.AuthCachePrefix+userID, time.Hour).Err()

		c.Set("userID", userID)
		c.Next()
	}
}
