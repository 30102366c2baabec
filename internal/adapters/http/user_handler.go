package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// UserHandler handles user-related requests
type UserHandler struct {
	userService ports.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService ports.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// CoursesOfUser godoc
// @Summary Courses a user is enrolled in
// @Tags usuarios
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} entities.Course
// @Failure 404 {object} ports.MessageResponse
// @Router /usuarios/{id}/cursos [get]
func (h *UserHandler) CoursesOfUser(c echo.Context) error {
	courses, err := h.userService.CoursesOfUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(h.logger, "Courses of user", err)
	}

	return c.JSON(http.StatusOK, courses)
}

// CommentsOfUser godoc
// @Summary Comments written by a user
// @Tags usuarios
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} entities.Comment
// @Router /usuarios/{id}/comentarios [get]
func (h *UserHandler) CommentsOfUser(c echo.Context) error {
	comments, err := h.userService.CommentsOfUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(h.logger, "Comments of user", err)
	}

	return c.JSON(http.StatusOK, comments)
}

// UsersWithProgressAbove godoc
// @Summary Users with progress above a threshold on any course
// @Tags usuarios
// @Produce json
// @Param min query number false "Threshold (default 90)"
// @Success 200 {array} entities.User
// @Router /usuarios/com-progresso-acima [get]
func (h *UserHandler) UsersWithProgressAbove(c echo.Context) error {
	min := queryFloat(c, "min", queries.DefaultMinProgress)

	users, err := h.userService.UsersWithProgressAbove(c.Request().Context(), min)
	if err != nil {
		return errorResponse(h.logger, "Users with progress above", err)
	}

	return c.JSON(http.StatusOK, users)
}

// UsersGroupedByType godoc
// @Summary Number of users per type
// @Tags usuarios
// @Produce json
// @Success 200 {object} map[string]int
// @Router /usuarios/agrupados-por-tipo [get]
func (h *UserHandler) UsersGroupedByType(c echo.Context) error {
	groups, err := h.userService.UsersGroupedByType(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Users grouped by type", err)
	}

	return c.JSON(http.StatusOK, groups)
}

// UsersWithMultipleCertificates godoc
// @Summary Users holding more than one certificate
// @Tags usuarios
// @Produce json
// @Success 200 {array} entities.User
// @Router /usuarios/com-multiplos-certificados [get]
func (h *UserHandler) UsersWithMultipleCertificates(c echo.Context) error {
	users, err := h.userService.UsersWithMultipleCertificates(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Users with multiple certificates", err)
	}

	return c.JSON(http.StatusOK, users)
}

// CourseStatusSummary godoc
// @Summary Status of every course a user has progress on
// @Tags usuarios
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ports.MessageResponse
// @Router /usuarios/{id}/status-cursos [get]
func (h *UserHandler) CourseStatusSummary(c echo.Context) error {
	summary, err := h.userService.CourseStatusSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(h.logger, "Course status summary", err)
	}

	return c.JSON(http.StatusOK, summary)
}

// IncrementProgress godoc
// @Summary Advance a user's progress on a course by 10 points
// @Tags usuarios
// @Produce json
// @Param id path string true "User ID"
// @Param cursoId path string true "Course ID"
// @Success 200 {object} ports.ProgressResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /usuarios/{id}/progresso/{cursoId} [patch]
func (h *UserHandler) IncrementProgress(c echo.Context) error {
	progress, err := h.userService.IncrementProgress(c.Request().Context(), c.Param("id"), c.Param("cursoId"))
	if err != nil {
		return errorResponse(h.logger, "Increment progress", err)
	}

	return c.JSON(http.StatusOK, ports.ProgressResponse{
		Message:  "Progress updated",
		Progress: progress,
	})
}
