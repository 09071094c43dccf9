package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rentmoment/rental-api/internal/constants"
	apperrors "github.com/rentmoment/rental-api/internal/errors"
	"github.com/rentmoment/rental-api/internal/service"
	"github.com/rentmoment/rental-api/pkg/logger"
)

type JWTMiddleware struct {
	jwtService  *service.JWTService
	userService *service.UserService
}

func NewJWTMiddleware(jwtService *service.JWTService, userService *service.UserService) *JWTMiddleware {
	return &JWTMiddleware{
		jwtService:  jwtService,
		userService: userService,
	}
}

func abortWith(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.ToHTTPStatus(err),
		constants.BuildErrorResponse(apperrors.GetErrorMessage(err), nil))
}

// RequireAuth validates the bearer token, checks it against the user's
// current token version and stores the caller on the gin context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			logger.GetLogger().Warn("Missing Authorization header",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			abortWith(c, apperrors.ErrUnauthorized)
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			logger.GetLogger().Warn("Invalid Authorization header format",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method))
			abortWith(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := m.jwtService.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			logger.GetLogger().Warn("Invalid or expired token",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Error(err))
			abortWith(c, apperrors.ErrInvalidToken)
			return
		}

		user, err := m.userService.Authenticate(c.Request.Context(), claims)
		if err != nil {
			logger.GetLogger().Warn("Token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", claims.UserID),
				zap.Int("token_version", claims.TokenVersion),
				zap.Error(err))
			abortWith(c, err)
			return
		}

		c.Set(constants.GinKeyUserID, user.ID)
		c.Set(constants.GinKeyUserEmail, user.Email)
		c.Set(constants.GinKeyUserRole, user.Role)

		logger.GetLogger().Debug("User authenticated successfully",
			zap.Uint("user_id", user.ID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *JWTMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(constants.GinKeyUserRole) != constants.RoleAdmin {
			logger.GetLogger().Warn("Admin route denied",
				zap.Uint("user_id", c.GetUint(constants.GinKeyUserID)),
				zap.String("path", c.Request.URL.Path))
			abortWith(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
