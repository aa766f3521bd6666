package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dfquintero/eventia/internal/repository"
	"github.com/dfquintero/eventia/internal/validate"
)

// fail maps the core error taxonomy onto HTTP statuses: unknown ids become
// 404, validation failures 400 with the reason, email conflicts 409.
// Anything else is a 500.
func fail(c echo.Context, err error) error {
	var invalid *validate.InvalidDataError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": invalid.Error()})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// conflict reports a recoverable state conflict (full event, duplicate
// registration, illegal payment transition) as a 409 with the given reason.
func conflict(c echo.Context, reason string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": reason})
}
