package middleware

import (
	"fmt"

	"payment_portal/internal/audit"

	"github.com/gin-gonic/gin"
)

// AuditFailures records an audit entry for any response carrying a 400+
// status, after the handler chain has run. It observes the outcome only
// and never alters it.
func AuditFailures(recorder audit.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 400 {
			return
		}

		var actor *int64
		if userID, err := AuthUserID(c); err == nil {
			actor = &userID
		}
		action := fmt.Sprintf("%s %s responded %d", c.Request.Method, c.Request.URL.Path, status)
		recorder.Record(actor, action, audit.Meta(c))
	}
}
