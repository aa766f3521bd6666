// Package handler contains the HTTP handlers.  Handlers stay thin: bind the
// request, call the service, translate the outcome (not-found, invalid data,
// state conflict) into a status code.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness endpoint used by load balancers and monitoring.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
