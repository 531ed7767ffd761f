package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"tuldokpos/internal/core/apperror"
)

// TokenValidator validates a bearer token and returns the operator
// name.
type TokenValidator interface {
	ValidateToken(tokenString string) (string, error)
}

// Auth middleware validates bearer tokens. Mounted only when an
// operator password is configured.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		operator, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set("operator", operator)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
