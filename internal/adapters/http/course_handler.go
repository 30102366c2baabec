package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	courseService ports.CourseService
	logger        *logger.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService ports.CourseService, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// CoursesWithManyComments godoc
// @Summary Courses with more than min comments
// @Tags cursos
// @Produce json
// @Param min query number false "Threshold (default 3)"
// @Success 200 {array} entities.Course
// @Router /cursos/com-muitos-comentarios [get]
func (h *CourseHandler) CoursesWithManyComments(c echo.Context) error {
	min := queryFloat(c, "min", queries.DefaultMinComments)

	courses, err := h.courseService.CoursesWithManyComments(c.Request().Context(), min)
	if err != nil {
		return errorResponse(h.logger, "Courses with many comments", err)
	}

	return c.JSON(http.StatusOK, courses)
}

// CoursesRankedByRating godoc
// @Summary Every course with its mean rating, highest first
// @Tags cursos
// @Produce json
// @Success 200 {array} entities.RankedCourse
// @Router /cursos/ordenados-por-nota [get]
func (h *CourseHandler) CoursesRankedByRating(c echo.Context) error {
	ranked, err := h.courseService.CoursesRankedByRating(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Courses ranked by rating", err)
	}

	return c.JSON(http.StatusOK, ranked)
}

// AverageProgress godoc
// @Summary Mean progress of the users enrolled in a course
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} ports.AverageProgressResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /cursos/{id}/media-progresso [get]
func (h *CourseHandler) AverageProgress(c echo.Context) error {
	courseID := c.Param("id")

	avg, err := h.courseService.AverageProgress(c.Request().Context(), courseID)
	if err != nil {
		return errorResponse(h.logger, "Average progress", err)
	}

	return c.JSON(http.StatusOK, ports.AverageProgressResponse{
		CourseID:        courseID,
		AverageProgress: avg,
	})
}

// AverageRating godoc
// @Summary Mean rating of a course
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} ports.AverageRatingResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /cursos/{id}/media-nota [get]
func (h *CourseHandler) AverageRating(c echo.Context) error {
	courseID := c.Param("id")

	avg, err := h.courseService.AverageRating(c.Request().Context(), courseID)
	if err != nil {
		return errorResponse(h.logger, "Average rating", err)
	}

	return c.JSON(http.StatusOK, ports.AverageRatingResponse{
		CourseID:      courseID,
		AverageRating: avg,
	})
}

// TotalDuration godoc
// @Summary Sum of the lesson durations of a course
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} ports.TotalDurationResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /cursos/{id}/duracao-total [get]
func (h *CourseHandler) TotalDuration(c echo.Context) error {
	courseID := c.Param("id")

	total, err := h.courseService.TotalDuration(c.Request().Context(), courseID)
	if err != nil {
		return errorResponse(h.logger, "Total duration", err)
	}

	return c.JSON(http.StatusOK, ports.TotalDurationResponse{
		CourseID:      courseID,
		TotalDuration: total,
	})
}

// StudentsWithHighProgress godoc
// @Summary Users whose progress on a course is above a threshold
// @Tags cursos
// @Produce json
// @Param id path string true "Course ID"
// @Param min query number false "Threshold (default 90)"
// @Success 200 {array} entities.User
// @Router /cursos/{id}/alunos-progresso-alto [get]
func (h *CourseHandler) StudentsWithHighProgress(c echo.Context) error {
	min := queryFloat(c, "min", queries.DefaultMinProgress)

	users, err := h.courseService.StudentsWithHighProgress(c.Request().Context(), c.Param("id"), min)
	if err != nil {
		return errorResponse(h.logger, "Students with high progress", err)
	}

	return c.JSON(http.StatusOK, users)
}

// CreateCourse godoc
// @Summary Create a course owned by an instructor
// @Tags cursos
// @Accept json
// @Produce json
// @Param course body ports.CreateCourseRequest true "Course"
// @Success 201 {object} ports.CourseCreatedResponse
// @Failure 400 {object} ports.MessageResponse
// @Router /cursos [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	var req ports.CreateCourseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), req)
	if err != nil {
		return errorResponse(h.logger, "Create course", err)
	}

	return c.JSON(http.StatusCreated, ports.CourseCreatedResponse{
		Message: "Course created",
		Course:  *course,
	})
}

// AddComment godoc
// @Summary Comment on a course
// @Tags cursos
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param comment body ports.AddCommentRequest true "Comment"
// @Success 201 {object} ports.CommentCreatedResponse
// @Failure 400 {object} ports.MessageResponse
// @Failure 404 {object} ports.MessageResponse
// @Router /cursos/{id}/comentarios [post]
func (h *CourseHandler) AddComment(c echo.Context) error {
	var req ports.AddCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	req.CourseID = c.Param("id")

	comment, err := h.courseService.AddComment(c.Request().Context(), req)
	if err != nil {
		return errorResponse(h.logger, "Add comment", err)
	}

	return c.JSON(http.StatusCreated, ports.CommentCreatedResponse{
		Message: "Comment added",
		Comment: *comment,
	})
}

// DeleteCoursesWithoutComments godoc
// @Summary Remove every course without comments
// @Tags cursos
// @Produce json
// @Success 200 {object} ports.CoursesRemovedResponse
// @Router /cursos/sem-comentarios [delete]
func (h *CourseHandler) DeleteCoursesWithoutComments(c echo.Context) error {
	removed, err := h.courseService.DeleteCoursesWithoutComments(c.Request().Context())
	if err != nil {
		return errorResponse(h.logger, "Delete courses without comments", err)
	}

	return c.JSON(http.StatusOK, ports.CoursesRemovedResponse{
		Message: fmt.Sprintf("Courses removed: %d", removed),
		Removed: removed,
	})
}
