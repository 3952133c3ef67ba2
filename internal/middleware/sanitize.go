package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log"

	"payment_portal/internal/sanitize"

	"github.com/gin-gonic/gin"
)

// SanitizeRequest cleans the decoded JSON body and the route parameters
// before anything else reads them. The query string is never touched.
// A failure inside the cleaner is logged and the request proceeds with
// its original body; every validated field still goes through a second
// strip-then-match pass in the validator.
func SanitizeRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			raw, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewReader(sanitizeBody(raw)))
			}
		}

		for i := range c.Params {
			c.Params[i].Value = sanitize.CleanString(c.Params[i].Value)
		}

		c.Next()
	}
}

// sanitizeBody returns the cleaned body, or the original bytes when the
// payload is not JSON or cleaning fails.
func sanitizeBody(raw []byte) (out []byte) {
	out = raw
	defer func() {
		if r := recover(); r != nil {
			log.Printf("sanitizer error, forwarding request unmodified: %v", r)
			out = raw
		}
	}()

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return raw
	}

	cleaned, err := json.Marshal(sanitize.CleanValue(tree))
	if err != nil {
		log.Printf("sanitizer re-encode error, forwarding request unmodified: %v", err)
		return raw
	}
	return cleaned
}
