package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gharzo/engine/internal/infrastructure/auth"
	"github.com/gharzo/engine/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Auth context keys
const (
	AuthClaimsKey  = "auth_claims"
	AuthActorIDKey = "auth_actor_id"
	AuthRoleKey    = "auth_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// Auth creates bearer-token authentication middleware. Verified claims land
// in the gin context for handlers to read.
func Auth(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := verifier.Verify(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeTokenExpired, "Token has expired", GetRequestID(c)))
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		actorID, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(AuthClaimsKey, claims)
		c.Set(AuthActorIDKey, actorID)
		c.Set(AuthRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole restricts a route to the given roles. It must run after Auth.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(AuthRoleKey)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role", GetRequestID(c)))
	}
}

// GetActorID returns the authenticated actor's ID, or uuid.Nil when the
// request is unauthenticated
func GetActorID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(AuthActorIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetClaims returns the verified token claims, if any
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(AuthClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
