package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", r.admin()...)
	{
		users.GET("", r.handlers.User.GetAll)
		users.GET("/:id", r.handlers.User.GetByID)
		users.PUT("/:id", r.handlers.User.Update)
		users.DELETE("/:id", r.handlers.User.Delete)
	}
}

func (r *Router) merchantRoutes(api *gin.RouterGroup) {
	merchants := api.Group("/merchants", r.admin()...)
	{
		merchants.GET("", r.handlers.Merchant.GetAll)
		merchants.GET("/:id", r.handlers.Merchant.GetByID)
		merchants.POST("", r.handlers.Merchant.Create)
		merchants.PUT("/:id", r.handlers.Merchant.Update)
		merchants.DELETE("/:id", r.handlers.Merchant.Delete)
	}
}
