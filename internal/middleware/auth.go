package middleware

import (
	"errors"
	"net/http"

	"payment_portal/internal/audit"
	"payment_portal/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	AuthUserKey = "authUser"
	AuthRoleKey = "authRole"

	// SessionCookie is the HTTP-only cookie carrying the session token
	SessionCookie = "token"
)

// SessionAuth verifies the session cookie and attaches the identity to the
// request context. Both failure branches audit before responding; a token
// that fails verification is treated exactly like an absent one apart from
// the message text.
func SessionAuth(jwtUtil *utils.JWTUtil, recorder audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookie)
		if err != nil || tokenString == "" {
			recorder.Record(nil, "Unauthorized access attempt - no token", audit.Meta(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "No token, authorization denied"})
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			recorder.Record(nil, "Invalid session token detected", audit.Meta(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
			return
		}

		c.Set(AuthUserKey, claims.UserID)
		c.Set(AuthRoleKey, claims.Role)

		c.Next()
	}
}

// AuthUserID returns the authenticated user ID set by SessionAuth
func AuthUserID(c *gin.Context) (int64, error) {
	userIDVal, exists := c.Get(AuthUserKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return 0, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// AuthRole returns the authenticated user's role set by SessionAuth
func AuthRole(c *gin.Context) (string, error) {
	roleVal, exists := c.Get(AuthRoleKey)
	if !exists {
		return "", errors.New("user role not found in context")
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", errors.New("invalid user role type in context")
	}
	return role, nil
}
