package router

import "github.com/gin-gonic/gin"

func (r *Router) authRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", r.handlers.Auth.Register)
		auth.POST("/login", r.handlers.Auth.Login)
		auth.POST("/refresh", r.handlers.Auth.RefreshToken)

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.handlers.Auth.Logout)
			protected.GET("/me", r.handlers.Auth.Me)
			protected.PUT("/me", r.handlers.Auth.UpdateProfile)
			protected.PUT("/me/password", r.handlers.Auth.UpdatePassword)
		}
	}
}
