package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"payment_portal/internal/model"

	"github.com/gin-gonic/gin"
)

// RoleMiddleware gates a route on the authenticated identity's role. It
// must run after SessionAuth; a missing role here is a wiring error, not
// an authentication failure.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(AuthRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Role not found in token, ensure session middleware runs first"})
			return
		}

		userRole, ok := roleVal.(string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": "Invalid role type in token"})
			return
		}

		for _, allowedRole := range allowedRoles {
			if userRole == allowedRole {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"msg": fmt.Sprintf("Access denied. %s role required.", strings.Join(allowedRoles, " or "))})
	}
}

// AdminMiddleware restricts a route to admins
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleAdmin)
}

// CustomerMiddleware restricts a route to customers
func CustomerMiddleware() gin.HandlerFunc {
	return RoleMiddleware(model.RoleCustomer)
}
