package middleware

import (
	"net/http"
	"strings"

	"jobtrack/internal/domain"
	"jobtrack/internal/pkg/access"
	jwtsvc "jobtrack/internal/pkg/jwt"
	"jobtrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth validates the bearer token and stores the session identity on the
// request context.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// SessionFrom builds the explicit session object every workflow call takes.
func SessionFrom(c *gin.Context) access.Session {
	return access.Session{
		ActorID: c.GetInt64("user_id"),
		Email:   c.GetString("email"),
		Role:    domain.UserRole(c.GetString("role")),
	}
}
