package router

import "github.com/gin-gonic/gin"

func (r *Router) orderRoutes(api *gin.RouterGroup) {
	orders := api.Group("/orders", r.jwtMw.RequireAuth())
	{
		orders.POST("", r.handlers.Order.Create)
		orders.GET("/my-orders", r.handlers.Order.MyOrders)
		orders.GET("/:id", r.handlers.Order.GetByID)
		orders.PUT("/:id/cancel", r.handlers.Order.Cancel)

		orders.GET("", r.jwtMw.RequireAdmin(), r.handlers.Order.GetAll)
		orders.PUT("/:id/status", r.jwtMw.RequireAdmin(), r.handlers.Order.UpdateStatus)
	}
}
