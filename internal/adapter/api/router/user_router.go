package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, limiter middleware.Limiter) {
	userHandler := handler.GetUserHandler()
	write := middleware.RateLimit(limiter)

	users := e.Group("/api/usuarios")
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)

	users.POST("", userHandler.Create, write)
	users.PUT("/:id", userHandler.Update, write)
	users.DELETE("/:id", userHandler.Delete, write)
}
