package middleware

import (
	"net/http"
	"strings"

	"sonf_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates the request from the Authorization bearer token and
// stores the resolved identity in the context under "user_id" and "email".
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		ident, err := service.ParseJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", ident.UserID)
		c.Set("email", ident.Email)
		c.Next()
	}
}
