package middleware

import (
	"net/http"
	"strings"

	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
)

// unauthorized aborts with the single body used for every credential
// failure, so callers cannot distinguish causes.
func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: "Could not validate credentials"})
}

// AuthMiddleware resolves the bearer token to a user and injects it into
// the request context
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(c)
			return
		}

		user, err := authService.ResolveSession(parts[1])
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)

		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthMiddleware
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
