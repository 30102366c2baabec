package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/edutrack/core/docs"
	httpHandlers "github.com/edutrack/core/internal/adapters/http"
	"github.com/edutrack/core/internal/application/commands"
	"github.com/edutrack/core/internal/application/services"
	"github.com/edutrack/core/internal/infrastructure/config"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/infrastructure/metrics"
	"github.com/edutrack/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	metrics *metrics.Metrics
	dataset ports.DatasetService
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance serving the dataset behind repo.
// A nil m disables both the domain counters and the /metrics endpoint.
func New(cfg *config.Config, repo ports.SnapshotRepository, appLogger *logger.Logger, m *metrics.Metrics) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	var domainMetrics ports.Metrics = ports.NopMetrics{}
	if m != nil {
		domainMetrics = m
	}

	// Initialize services
	engine := commands.NewEngine()
	userService := services.NewUserService(repo, engine, appLogger, domainMetrics)
	courseService := services.NewCourseService(repo, engine, appLogger, domainMetrics)
	instructorService := services.NewInstructorService(repo)
	certificateService := services.NewCertificateService(repo, engine, appLogger, domainMetrics)
	datasetService := services.NewDatasetService(repo)

	// Initialize handlers
	handlers := httpHandlers.Handlers{
		Users:        httpHandlers.NewUserHandler(userService, appLogger),
		Courses:      httpHandlers.NewCourseHandler(courseService, appLogger),
		Instructors:  httpHandlers.NewInstructorHandler(instructorService, appLogger),
		Certificates: httpHandlers.NewCertificateHandler(certificateService, appLogger),
	}

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		metrics: m,
		dataset: datasetService,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if cfg.Metrics.Enabled && m != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(handlers)

	return server, nil
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h httpHandlers.Handlers) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	api := s.echo.Group(s.config.Server.BasePath)

	// Instructor routes
	api.GET("/instrutores", h.Instructors.ListInstructors)
	api.GET("/instrutores/:id/quantidade-cursos", h.Instructors.CourseCount)

	// Course routes
	api.GET("/cursos/com-muitos-comentarios", h.Courses.CoursesWithManyComments)
	api.GET("/cursos/ordenados-por-nota", h.Courses.CoursesRankedByRating)
	api.GET("/cursos/:id/media-progresso", h.Courses.AverageProgress)
	api.GET("/cursos/:id/media-nota", h.Courses.AverageRating)
	api.GET("/cursos/:id/duracao-total", h.Courses.TotalDuration)
	api.GET("/cursos/:id/alunos-progresso-alto", h.Courses.StudentsWithHighProgress)
	api.POST("/cursos", h.Courses.CreateCourse)
	api.POST("/cursos/:id/comentarios", h.Courses.AddComment)
	api.DELETE("/cursos/sem-comentarios", h.Courses.DeleteCoursesWithoutComments)

	// User routes
	api.GET("/usuarios/com-progresso-acima", h.Users.UsersWithProgressAbove)
	api.GET("/usuarios/agrupados-por-tipo", h.Users.UsersGroupedByType)
	api.GET("/usuarios/com-multiplos-certificados", h.Users.UsersWithMultipleCertificates)
	api.GET("/usuarios/:id/cursos", h.Users.CoursesOfUser)
	api.GET("/usuarios/:id/comentarios", h.Users.CommentsOfUser)
	api.GET("/usuarios/:id/status-cursos", h.Users.CourseStatusSummary)
	api.PATCH("/usuarios/:id/progresso/:cursoId", h.Users.IncrementProgress)

	// Certificate routes
	api.GET("/certificados/por-curso", h.Certificates.CertificatesPerCourse)
	api.POST("/certificados", h.Certificates.IssueCertificates)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metricsMiddleware())

	metricsHandler := promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.checkStore(); err != nil {
		status = "error"
		checks["store"] = map[string]interface{}{
			"status": "error",
			"path":   s.config.Store.Path,
			"error":  err.Error(),
		}
	} else {
		stats, err := s.dataset.Stats(c.Request().Context())
		if err != nil {
			return err
		}
		checks["store"] = map[string]interface{}{
			"status": "ok",
			"path":   s.config.Store.Path,
			"stats":  stats,
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.checkStore(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "store_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// checkStore verifies the data file can be created or rewritten.
// A missing file is fine as long as its directory exists.
func (s *Server) checkStore() error {
	dir := filepath.Dir(s.config.Store.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("store directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store directory %s is not a directory", dir)
	}
	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address, "base_path", s.config.Server.BasePath)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as a {"message": ...} body
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = e.Error()
		} else {
			msg = http.StatusText(code)
		}

		if _, ok := msg.(string); !ok {
			msg = fmt.Sprint(msg)
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, ports.MessageResponse{Message: msg.(string)})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
