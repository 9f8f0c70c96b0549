package router

import (
	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/handler"
	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, limiter middleware.Limiter) {
	reviewHandler := handler.GetReviewHandler()
	write := middleware.RateLimit(limiter)

	reviews := e.Group("/api/resenas")
	reviews.GET("", reviewHandler.List)
	reviews.GET("/:id", reviewHandler.Get)

	reviews.POST("", reviewHandler.Create, write)
	reviews.PUT("/:id", reviewHandler.Update, write)
	reviews.DELETE("/:id", reviewHandler.Delete, write)
}
