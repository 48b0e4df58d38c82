package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"inventory-service/internal/service"
)

// errorResponse maps service errors to HTTP statuses. Validation failures
// keep their message so the operator sees which constraint was violated;
// everything unexpected collapses to a generic 500.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrTenantNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "record not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// paramID parses the :id path parameter.
func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
