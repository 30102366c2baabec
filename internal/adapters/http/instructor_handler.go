package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// InstructorHandler handles instructor-related requests
type InstructorHandler struct {
	instructorService ports.InstructorService
	logger            *logger.Logger
}

// NewInstructorHandler creates a new instructor handler
func NewInstructorHandler(instructorService ports.InstructorService, logger *logger.Logger) *InstructorHandler {
	return &InstructorHandler{
		instructorService: instructorService,
		logger:            logger,
	}
}

// ListInstructors godoc
// @Summary Every user of type instructor
// @Tags instrutores
// @Produce json
// @Success 200 {array} entities.User
// @Router /instrutores [get]
func (h *InstructorHandler) ListInstructors(c echo.Context) error {
	instructors, err := h.instructorService.ListInstructors(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "List instructors", err)
	}

	return c.JSON(http.StatusOK, instructors)
}

// CourseCount godoc
// @Summary Number of courses owned by an instructor
// @Tags instrutores
// @Produce json
// @Param id path string true "Instructor ID"
// @Success 200 {object} ports.CourseCountResponse
// @Router /instrutores/{id}/quantidade-cursos [get]
func (h *InstructorHandler) CourseCount(c echo.Context) error {
	instructorID := c.Param("id")

	count, err := h.instructorService.CourseCount(c.Request().Context(), instructorID)
	if err != nil {
		return errorResponse(h.logger, "Course count", err)
	}

	return c.JSON(http.StatusOK, ports.CourseCountResponse{
		InstructorID: instructorID,
		CourseCount:  count,
	})
}
