package auth

import (
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.RouterGroup, svc *Service, authMW gin.HandlerFunc) {
	authController := NewAuthController(svc)

	authPublic := router.Group("/auth")
	{
		authPublic.POST("/login", authController.Login)
	}

	authProtected := router.Group("/auth")
	authProtected.Use(authMW)
	{
		authProtected.GET("/me", authController.GetProfile)
		authProtected.POST("/change-password", authController.ChangePassword)
	}
}
