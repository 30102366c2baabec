package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/infrastructure/logger"
)

// Handlers groups every route handler the server registers
type Handlers struct {
	Users        *UserHandler
	Courses      *CourseHandler
	Instructors  *InstructorHandler
	Certificates *CertificateHandler
}

// errorResponse maps a service error onto an HTTP error.
// Unknown errors are logged and hidden behind a generic 500.
func errorResponse(log *logger.Logger, action string, err error) error {
	switch {
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrEmptyResult):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Errorw(action + " failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}

// bindAndValidate decodes the request into req and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}

// queryFloat reads a numeric query parameter, falling back to def when it is absent or malformed
func queryFloat(c echo.Context, name string, def float64) float64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
