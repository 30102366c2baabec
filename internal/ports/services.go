package ports

import (
	"context"

	"github.com/edutrack/core/internal/domain/entities"
)

// UserService interface for user-centric queries and progress updates
type UserService interface {
	CoursesOfUser(ctx context.Context, userID string) ([]entities.Course, error)
	CommentsOfUser(ctx context.Context, userID string) ([]entities.Comment, error)
	UsersWithProgressAbove(ctx context.Context, min float64) ([]entities.User, error)
	UsersGroupedByType(ctx context.Context) (map[entities.UserType]int, error)
	UsersWithMultipleCertificates(ctx context.Context) ([]entities.User, error)
	CourseStatusSummary(ctx context.Context, userID string) (map[string]entities.CourseStatus, error)
	IncrementProgress(ctx context.Context, userID, courseID string) (float64, error)
}

// CourseService interface for course queries and course/comment mutations
type CourseService interface {
	CoursesWithManyComments(ctx context.Context, min float64) ([]entities.Course, error)
	AverageProgress(ctx context.Context, courseID string) (float64, error)
	AverageRating(ctx context.Context, courseID string) (float64, error)
	TotalDuration(ctx context.Context, courseID string) (float64, error)
	CoursesRankedByRating(ctx context.Context) ([]entities.RankedCourse, error)
	StudentsWithHighProgress(ctx context.Context, courseID string, min float64) ([]entities.User, error)
	CreateCourse(ctx context.Context, req CreateCourseRequest) (*entities.Course, error)
	AddComment(ctx context.Context, req AddCommentRequest) (*entities.Comment, error)
	DeleteCoursesWithoutComments(ctx context.Context) (int, error)
}

// InstructorService interface for instructor queries
type InstructorService interface {
	ListInstructors(ctx context.Context) ([]entities.User, error)
	CourseCount(ctx context.Context, instructorID string) (int, error)
}

// CertificateService interface for certificate reporting and issuance
type CertificateService interface {
	CertificatesPerCourse(ctx context.Context) (map[string]int, error)
	IssueCertificates(ctx context.Context) (int, error)
}

// DatasetService interface for whole-dataset operations
type DatasetService interface {
	Stats(ctx context.Context) (entities.DatasetStats, error)
	Snapshot(ctx context.Context) (*entities.Snapshot, error)
}

// Request types

// CreateCourseRequest is the body of POST /cursos. Lessons must be present but may be empty.
type CreateCourseRequest struct {
	Name         string            `json:"nome" validate:"required"`
	InstructorID string            `json:"instrutorId" validate:"required"`
	Lessons      []entities.Lesson `json:"aulas" validate:"required"`
}

// AddCommentRequest is the body of POST /cursos/:id/comentarios.
type AddCommentRequest struct {
	CourseID string   `param:"id" json:"-"`
	UserID   string   `json:"usuarioId" validate:"required"`
	Text     string   `json:"texto" validate:"required"`
	Rating   *float64 `json:"nota"`
}

// Response types

type MessageResponse struct {
	Message string `json:"message"`
}

type ProgressResponse struct {
	Message  string  `json:"message"`
	Progress float64 `json:"progresso"`
}

type CourseCreatedResponse struct {
	Message string          `json:"message"`
	Course  entities.Course `json:"curso"`
}

type CommentCreatedResponse struct {
	Message string           `json:"message"`
	Comment entities.Comment `json:"comentario"`
}

type CertificatesIssuedResponse struct {
	Message string `json:"message"`
	Created int    `json:"certificadosCriados"`
}

type CoursesRemovedResponse struct {
	Message string `json:"message"`
	Removed int    `json:"cursosRemovidos"`
}

type AverageProgressResponse struct {
	CourseID        string  `json:"cursoId"`
	AverageProgress float64 `json:"mediaProgresso"`
}

type AverageRatingResponse struct {
	CourseID      string  `json:"cursoId"`
	AverageRating float64 `json:"mediaNota"`
}

type TotalDurationResponse struct {
	CourseID      string  `json:"cursoId"`
	TotalDuration float64 `json:"duracaoTotal"`
}

type CourseCountResponse struct {
	InstructorID string `json:"instrutorId"`
	CourseCount  int    `json:"quantidadeCursos"`
}
