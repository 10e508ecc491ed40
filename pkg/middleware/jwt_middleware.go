package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"yatra/pkg/memcache"
	"yatra/pkg/utils"
)

// PasswordChangeLookup reports when a user last changed their password
// (unix seconds, 0 if never). Tokens issued before that are rejected.
type PasswordChangeLookup interface {
	PasswordChangedAt(ctx context.Context, userID string) (int64, error)
}

type Auth struct {
	jwt     *utils.JWTManager
	revoked *memcache.RevokedTokens
	users   PasswordChangeLookup
}

func NewAuth(jwt *utils.JWTManager, revoked *memcache.RevokedTokens, users PasswordChangeLookup) *Auth {
	return &Auth{jwt: jwt, revoked: revoked, users: users}
}

func (a *Auth) JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}
		if !a.authenticate(c, tokenString) {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and lets anonymous
// requests through otherwise.
func (a *Auth) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			a.authenticate(c, tokenString)
		}
		c.Next()
	}
}

func (a *Auth) authenticate(c *gin.Context, tokenString string) bool {
	claims, err := a.jwt.ValidateToken(tokenString)
	if err != nil {
		return false
	}
	if a.revoked != nil && a.revoked.IsRevoked(claims.ID) {
		return false
	}
	if a.users != nil && claims.IssuedAt != nil {
		changedAt, err := a.users.PasswordChangedAt(c.Request.Context(), claims.UserID)
		if err != nil {
			return false
		}
		if changedAt > 0 && claims.IssuedAt.Unix() < changedAt {
			return false
		}
	}

	c.Set("user_id", claims.UserID)
	c.Set("Role", claims.Role)
	c.Set("token_id", claims.ID)
	if claims.ExpiresAt != nil {
		c.Set("token_exp", claims.ExpiresAt.Time)
	}
	return true
}

func RoleMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("Role")
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
