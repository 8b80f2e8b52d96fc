package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"mindhaven/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextClientID    = "clientID"
	ContextTherapistID = "therapistID"
)

const authCacheTTL = time.Hour

// authCache is the slice of the redis client the token check needs.
type authCache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// JWTAuthClientMiddleware authenticates client-facing endpoints and stores the
// client id in the context.
func JWTAuthClientMiddleware() gin.HandlerFunc {
	return requireRole("client", ContextClientID)
}

// JWTAuthTherapistMiddleware authenticates therapist-facing endpoints and
// stores the therapist id in the context.
func JWTAuthTherapistMiddleware() gin.HandlerFunc {
	return requireRole("therapist", ContextTherapistID)
}

func requireRole(role, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, tokenRole, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if tokenRole != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Wrong role for this endpoint"})
			return
		}

		var cache authCache
		if client := utils.GetAuthCacheClient(); client != nil {
			cache = client
		}

		// The cache pins one active token hash per subject. A cached hash
		// that differs from this token means the token was superseded or
		// revoked.
		if !checkAuthCache(c.Request.Context(), cache, subject, tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		c.Set(contextKey, subject)
		c.Next()
	}
}

// checkAuthCache validates the token hash against the auth cache. A matching
// hash refreshes the TTL; a miss stores this token as the active one. Cache
// unavailability degrades to signature-only auth rather than locking everyone
// out.
func checkAuthCache(ctx context.Context, cache authCache, subject, tokenString string) bool {
	if cache == nil {
		utils.GetLogger().Warn("Auth cache unavailable, skipping token revocation check")
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	key := utils.AuthCachePrefix + subject
	computedHash := utils.HashToken(tokenString)

	cachedHash, err := cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cachedHash != computedHash {
			return false
		}
		_ = cache.Expire(ctx, key, authCacheTTL).Err()
		return true
	case err == redis.Nil:
		_ = cache.Set(ctx, key, computedHash, authCacheTTL).Err()
		return true
	default:
		utils.GetLogger().Warn("Auth cache lookup failed, skipping token revocation check",
			zap.Error(err))
		return true
	}
}
