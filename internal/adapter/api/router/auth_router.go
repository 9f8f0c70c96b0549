package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, limiter middleware.Limiter) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/usuarios", middleware.RateLimit(limiter))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
}
