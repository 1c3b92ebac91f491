package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trafylabs/academy-api/pkg/auth"
)

const (
	GinContextKeyUserID = "userID"
	SessionCookieName   = "sid"
)

func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

// SessionIDMiddleware assigns every visitor a stable session id cookie; the
// per-visitor UI state (overlays, notices, submit guard) is keyed on it.
func SessionIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookieName)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookieName, sid, 0, "/", "", false, true)
		}
		c.Set(SessionCookieName, sid)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	if sid, ok := c.Get(SessionCookieName); ok {
		if s, ok := sid.(string); ok {
			return s
		}
	}
	return ""
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userIDUUID, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userIDUUID, true
}
