package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/response"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
	// ContextKeyActor is the Gin context key for the authenticated service.Actor.
	ContextKeyActor = "actor"
)

var errTokenMissing = errors.New("authorization header or token query required")

// Authenticator is the part of service.AuthService the auth middleware needs.
type Authenticator interface {
	ValidateToken(tokenStr string) (*service.Claims, error)
	ValidateSession(ctx context.Context, userID uuid.UUID, jti string) error
	ResolveActor(ctx context.Context, claims *service.Claims) (service.Actor, error)
}

// RequireJWT validates a JWT from the Authorization header, falling back to
// the ?token= query parameter for WebSocket upgrades.
func RequireJWT(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractAndValidateClaims(c, auth)
		if err != nil {
			if errors.Is(err, errTokenMissing) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// LoadActor resolves the caller behind the claims and stores it as the
// request's service.Actor.
func LoadActor(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		actor, err := auth.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalidated) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyActor, actor)
		c.Next()
	}
}

// Authenticated is the full chain for signed-in routes: token, single
// session, then actor.
func Authenticated(auth Authenticator) []gin.HandlerFunc {
	return []gin.HandlerFunc{RequireJWT(auth), CheckSession(auth), LoadActor(auth)}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetActor retrieves the authenticated actor from the Gin context.
func GetActor(c *gin.Context) (service.Actor, bool) {
	val, exists := c.Get(ContextKeyActor)
	if !exists {
		return service.Actor{}, false
	}
	actor, ok := val.(service.Actor)
	return actor, ok
}

func extractAndValidateClaims(c *gin.Context, auth Authenticator) (*service.Claims, error) {
	tokenStr := ""

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			tokenStr = parts[1]
		}
	}

	// Browsers cannot set headers on WebSocket upgrades.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}

	if tokenStr == "" {
		return nil, errTokenMissing
	}

	return auth.ValidateToken(tokenStr)
}
