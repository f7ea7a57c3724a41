package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"njeyali/config"
	"njeyali/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// ActorKey is the gin context key carrying the authenticated staff identity.
const ActorKey = "actor"

// StaffAuthMiddleware guards staff endpoints. Tokens are HMAC-signed JWTs
// issued by the identity service; the claims must carry a staff or admin
// role. The subject claim becomes the audit-trail actor.
func StaffAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(config.AppConfig.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "invalid claims")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)
		if role != "staff" && role != "admin" {
			utils.JSONError(c, http.StatusForbidden, "Forbidden", "staff role required")
			c.Abort()
			return
		}

		actor, _ := claims["sub"].(string)
		if actor == "" {
			actor, _ = claims["email"].(string)
		}
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// Actor returns the authenticated staff identity for audit entries.
func Actor(c *gin.Context) string {
	if v, ok := c.Get(ActorKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "staff"
}
