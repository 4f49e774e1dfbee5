package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sparklean/utils"
)

// JWTAuthAdminMiddleware guards staff-only endpoints with an admin JWT.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		subject, _ := claims["sub"].(string)
		c.Set("adminSubject", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
