package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clipstream/internal/application"
	"clipstream/pkg/helpers"
	"clipstream/pkg/response"
)

// Context keys set by Auth on success.
const (
	CtxUserID    = "userID"
	CtxIsAdmin   = "isAdmin"
	CtxSessionID = "sessionID"
)

// Auth validates the access token from the Authorization header or the
// access_token cookie, checks the session is still alive, and sets the
// resolved identity in the Gin context.
func Auth(jwt *helpers.JWTManager, sessions *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFrom(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		if sessions != nil && !sessions.SessionAlive(c.Request.Context(), claims.SessionID) {
			response.AbortError(c, http.StatusUnauthorized, "session expired", nil)
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Set(CtxSessionID, claims.SessionID)
		c.Next()
	}
}

// AdminOnly gates a route behind the admin flag; run it after Auth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxIsAdmin) {
			response.AbortError(c, http.StatusForbidden, "admin access required", nil)
			return
		}
		c.Next()
	}
}

// IdentityFrom rebuilds the caller identity the Auth middleware stored.
func IdentityFrom(c *gin.Context) application.Identity {
	return application.Identity{
		UserID:  c.GetString(CtxUserID),
		IsAdmin: c.GetBool(CtxIsAdmin),
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		}
	}
	if t, err := c.Cookie("access_token"); err == nil {
		return t
	}
	return ""
}
