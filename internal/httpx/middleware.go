package httpx

// gin middleware for the dev mock server. Request ids minted here match the
// X-Request-ID the outbound transport in transport.go injects, so a khana
// run against mockapi can be correlated end to end from the two logs.

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ridKey = "khana-rid"

// RequestID echoes the caller's X-Request-ID, minting one when absent, and
// makes it available to Logger via the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ridKey, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one line per request: id, method, full path with query,
// status, response size and duration.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if q := c.Request.URL.RawQuery; q != "" {
			path += "?" + q
		}
		c.Next()
		log.Printf("[mockapi] rid=%s %s %s status=%d size=%d dur=%s",
			c.GetString(ridKey), c.Request.Method, path,
			c.Writer.Status(), c.Writer.Size(), time.Since(start))
	}
}
