package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/pkg/logger"
	"github.com/rentmoment/rental-api/pkg/validation"
)

// RegisterValidator makes gin's binding validator report fields by their
// JSON names so validation messages match the request body.
func RegisterValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Register(v)
		return
	}
	logger.GetLogger().Warn("Binding validator is not go-playground/validator; field names stay Go names")
}

// BodyLimit caps request bodies at limit bytes. Multipart uploads are
// checked against their own per-file limit as well.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.ContentLength > limit {
			logger.GetLogger().Warn("Request body too large",
				zap.String("path", c.Request.URL.Path),
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", limit))
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				constants.BuildErrorResponse(constants.MsgBodyTooLarge, nil))
			return
		}
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
