package middleware

import (
	"net/http"
	"strings"

	"comoencasa/models"
	"comoencasa/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware guards the dashboard routes: it requires a bearer
// token signed by this service carrying the admin role.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if role, _ := claims["role"].(string); role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("adminID", sub)
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
