package router

import "github.com/gin-gonic/gin"

func (r *Router) uploadRoutes(api *gin.RouterGroup) {
	upload := api.Group("/upload", r.admin()...)
	{
		upload.POST("", r.handlers.Upload.Single)
		upload.POST("/multiple", r.handlers.Upload.Multiple)
		upload.DELETE("/:filename", r.handlers.Upload.Delete)
	}
}
