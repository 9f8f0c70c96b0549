package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
)

func SetupPlaceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter) {
	placeHandler := handler.GetPlaceHandler()
	write := middleware.RateLimit(limiter)

	places := e.Group("/api/lugares")
	places.GET("", placeHandler.List)
	places.GET("/:id", placeHandler.Get)

	places.POST("", placeHandler.Create, write, authMiddleware.OptionalAuth)
	places.PUT("/:id", placeHandler.Update, write)
	places.DELETE("/:id", placeHandler.Delete, write)
	places.PUT("/:id/votar", placeHandler.Vote, write)
}
