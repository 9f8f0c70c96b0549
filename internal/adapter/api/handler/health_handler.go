package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sabrinaansede/apphib/internal/domain/repository"
)

const banner = "<h1> API 📍 </h1>"

type HealthHandler struct {
	stores []repository.StoreHealth
}

var healthHandler *HealthHandler

func NewHealthHandler(stores ...repository.StoreHealth) *HealthHandler {
	return &HealthHandler{
		stores: stores,
	}
}

func SetupHealthHandler(stores ...repository.StoreHealth) {
	healthHandler = NewHealthHandler(stores...)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) Banner(c echo.Context) error {
	return c.HTML(http.StatusOK, banner)
}

// CheckHealth always answers 200; a failed store ping turns the status to
// "degraded" since the API keeps serving without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	stores := make(map[string]string, len(h.stores))
	for _, s := range h.stores {
		if err := s.Ping(ctx); err != nil {
			stores[s.Name()] = err.Error()
			status = "degraded"
			continue
		}
		stores[s.Name()] = "ok"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
		"stores": stores,
		"time":   time.Now().Format(time.RFC3339),
	})
}
