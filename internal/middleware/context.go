package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/pkg/logger"
)

// RequestTimeout bounds the request context. Storage calls made with it
// fail once the deadline passes, which the handlers report as 504.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			logger.WarnWithContext(ctx, "Request exceeded its deadline").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Duration(timeout).
				Log()
		}
	}
}
