package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JeanCorreaBarros/saas-multitenant-basic/prometheus"
)

// HealthHandler serves liveness and metrics endpoints.
type HealthHandler struct {
	env string
}

func NewHealthHandler(env string) *HealthHandler {
	return &HealthHandler{env: env}
}

// Check handles the health check endpoint
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	})
}

// Metrics exposes the Prometheus registry.
func (h *HealthHandler) Metrics(c echo.Context) error {
	prometheus.GetPrometheusHandler().ServeHTTP(c.Response(), c.Request())
	return nil
}
