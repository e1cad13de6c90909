package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthStatus is the body returned by the liveness probe
type HealthStatus struct {
	Status string `json:"status"`
}

// HealthCheck reports that the process is serving requests.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{Status: "healthy"})
}
