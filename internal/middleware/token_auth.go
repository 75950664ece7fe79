package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
)

// BearerToken creates a Gin middleware that requires
// "Authorization: Bearer <token>". An empty token disables the check.
func BearerToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			unauthorized := apperrors.ErrUnauthorized
			c.AbortWithStatusJSON(unauthorized.StatusCode, gin.H{
				"error": gin.H{"code": unauthorized.Code, "message": unauthorized.Message},
			})
			return
		}
		c.Next()
	}
}
