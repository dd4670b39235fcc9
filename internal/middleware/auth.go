package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/service"
)

const (
	sessionTokenHeader = "X-Session-Token"
	sessionTokenQuery  = "token"

	ContextUserKey  = "current_user"
	ContextTokenKey = "session_token"
)

// ExtractToken finds the session token in the request. Precedence:
// bearer Authorization header, then X-Session-Token, then the token
// query parameter. First non-empty value wins.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if token := c.GetHeader(sessionTokenHeader); token != "" {
		return token
	}
	return c.Query(sessionTokenQuery)
}

func Auth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)

		c.Next()
	}
}

// CurrentUser pulls the authenticated user set by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
