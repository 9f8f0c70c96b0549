package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/adapter/api/middleware"
)

// Setup mounts every route. limiter may be nil to disable write throttling.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter middleware.Limiter, metrics http.Handler) {
	SetupHealthRouter(e, metrics)
	SetupAuthRouter(e, limiter)
	SetupUserRouter(e, limiter)
	SetupPlaceRouter(e, authMiddleware, limiter)
	SetupReviewRouter(e, limiter)
}
