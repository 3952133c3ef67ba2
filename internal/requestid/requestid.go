// Package requestid assigns each request a correlation ID, honoring an
// inbound X-Request-ID header when one is present.
package requestid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const key contextKey = "request_id"

const Header = "X-Request-ID"

// Middleware stamps the request context and response header
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(Header)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), key, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(Header, reqID)

		c.Next()
	}
}

// Get returns the request ID stored in ctx, or "" when absent
func Get(ctx context.Context) string {
	if val := ctx.Value(key); val != nil {
		return val.(string)
	}
	return ""
}
