package router

import "github.com/gin-gonic/gin"

// catalogRoutes mounts categories and products: reads are public, writes
// need an admin.
func (r *Router) catalogRoutes(api *gin.RouterGroup) {
	categories := api.Group("/categories")
	{
		categories.GET("", r.handlers.Category.GetAll)
		categories.GET("/:id", r.handlers.Category.Get)

		admin := categories.Group("", r.admin()...)
		admin.POST("", r.handlers.Category.Create)
		admin.PUT("/:id", r.handlers.Category.Update)
		admin.DELETE("/:id", r.handlers.Category.Delete)
	}

	products := api.Group("/products")
	{
		products.GET("", r.handlers.Product.GetAll)
		products.GET("/featured", r.handlers.Product.Featured)
		products.GET("/:id", r.handlers.Product.Get)

		admin := products.Group("", r.admin()...)
		admin.POST("", r.handlers.Product.Create)
		admin.PUT("/:id", r.handlers.Product.Update)
		admin.DELETE("/:id", r.handlers.Product.Delete)
	}
}
