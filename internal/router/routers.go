package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentmoment/rental-api/config"
	"github.com/rentmoment/rental-api/internal/constants"
	"github.com/rentmoment/rental-api/internal/handler"
	"github.com/rentmoment/rental-api/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Merchant *handler.MerchantHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	Upload   *handler.UploadHandler
	Health   *handler.HealthHandler
}

type Router struct {
	handlers Handlers
	jwtMw    *middleware.JWTMiddleware
	Config   *config.Config
}

func NewRouter(handlers Handlers, jwtMw *middleware.JWTMiddleware, config *config.Config) *Router {
	return &Router{
		handlers: handlers,
		jwtMw:    jwtMw,
		Config:   config,
	}
}

// SetupRoutes builds the engine. Release mode is switched on in production so
// that error responses carry no internal detail.
func (r *Router) SetupRoutes() *gin.Engine {
	if r.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.RegisterValidator()

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestResponseMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(r.Config.CORS.Origins, r.Config.IsProduction()))
	router.Use(middleware.RequestTimeout(r.Config.App.Timeout))
	router.Use(middleware.BodyLimit(r.Config.App.BodyLimit))

	router.Static(r.Config.Upload.PublicPath, r.Config.Upload.Dir)

	api := router.Group("/api")
	if r.Config.RateLimit.Enabled {
		api.Use(middleware.RateLimit(r.Config.RateLimit.Request,
			time.Duration(r.Config.RateLimit.Duration)*time.Second))
	}

	api.GET("/health", r.handlers.Health.HealthCheck)

	r.authRoutes(api)
	r.userRoutes(api)
	r.merchantRoutes(api)
	r.catalogRoutes(api)
	r.orderRoutes(api)
	r.uploadRoutes(api)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgNotFound, nil))
	})

	return router
}

// admin is the middleware chain for admin-only groups.
func (r *Router) admin() []gin.HandlerFunc {
	return []gin.HandlerFunc{r.jwtMw.RequireAuth(), r.jwtMw.RequireAdmin()}
}
