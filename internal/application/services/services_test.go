package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack/core/internal/adapters/repository"
	"github.com/edutrack/core/internal/application/commands"
	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

const dataset = `{
  "usuarios": [
    {"id": "u1", "nome": "Ana", "tipo": "instrutor"},
    {"id": "u2", "nome": "Bia", "tipo": "aluno", "cursosMatriculados": ["c1", "c2"], "progressoCursos": {"c1": 85, "c2": 95}},
    {"id": "u3", "nome": "Caio", "tipo": "aluno", "cursosMatriculados": ["c1"], "progressoCursos": {"c1": 40}}
  ],
  "cursos": [
    {"id": "c1", "nome": "Go", "instrutorId": "u1", "aulas": [{"duracao": 30}, {"duracao": 15}]},
    {"id": "c2", "nome": "SQL", "instrutorId": "u1", "aulas": []}
  ],
  "comentarios": [
    {"id": "k1", "cursoId": "c1", "usuarioId": "u2", "texto": "top", "nota": 5},
    {"id": "k2", "cursoId": "c1", "usuarioId": "u3", "texto": "ok", "nota": 3}
  ],
  "certificados": []
}`

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	repo         *repository.FileSnapshotRepository
	users        *UserService
	courses      *CourseService
	instructors  *InstructorService
	certificates *CertificateService
	dataset      *DatasetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "base_dados.json")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))

	n := 0
	engine := &commands.Engine{
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
		Now: func() time.Time { return fixedNow },
	}
	log := logger.NewNop()
	repo := repository.NewFileSnapshotRepository(path, log, nil)

	return &fixture{
		repo:         repo,
		users:        NewUserService(repo, engine, log, nil),
		courses:      NewCourseService(repo, engine, log, nil),
		instructors:  NewInstructorService(repo),
		certificates: NewCertificateService(repo, engine, log, nil),
		dataset:      NewDatasetService(repo),
	}
}

func (f *fixture) reload(t *testing.T) *entities.Snapshot {
	t.Helper()
	return f.repo.Load(context.Background())
}

func TestUserService_Queries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	courses, err := f.users.CoursesOfUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "c1", courses[0].ID)

	_, err = f.users.CoursesOfUser(ctx, "nobody")
	assert.True(t, errors.Is(err, entities.ErrNotFound))

	above, err := f.users.UsersWithProgressAbove(ctx, 90)
	require.NoError(t, err)
	require.Len(t, above, 1)
	assert.Equal(t, "u2", above[0].ID)

	groups, err := f.users.UsersGroupedByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[entities.UserType]int{entities.UserTypeInstructor: 1, entities.UserTypeLearner: 2}, groups)

	summary, err := f.users.CourseStatusSummary(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, entities.CourseStatusInProgress, summary["c1"])

	comments, err := f.users.CommentsOfUser(ctx, "u3")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "k2", comments[0].ID)
}

func TestUserService_IncrementProgressPersists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.users.IncrementProgress(ctx, "u2", "c1")
	require.NoError(t, err)
	assert.Equal(t, 95.0, got)

	user, ok := f.reload(t).FindUser("u2")
	require.True(t, ok)
	assert.Equal(t, 95.0, user.ProgressByCourse["c1"])

	_, err = f.users.IncrementProgress(ctx, "nobody", "c1")
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestCourseService_Reports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	avg, err := f.courses.AverageProgress(ctx, "c1")
	require.NoError(t, err)
	assert.InDelta(t, 62.5, avg, 1e-9)

	rating, err := f.courses.AverageRating(ctx, "c1")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, rating, 1e-9)

	_, err = f.courses.AverageRating(ctx, "c2")
	assert.True(t, errors.Is(err, entities.ErrEmptyResult))

	total, err := f.courses.TotalDuration(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 45.0, total)

	_, err = f.courses.TotalDuration(ctx, "c9")
	assert.True(t, errors.Is(err, entities.ErrNotFound))

	ranked, err := f.courses.CoursesRankedByRating(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "c1", ranked[0].ID)

	many, err := f.courses.CoursesWithManyComments(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, many, 1)

	high, err := f.courses.StudentsWithHighProgress(ctx, "c2", 90)
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "u2", high[0].ID)
}

func TestCourseService_CreateCourse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	course, err := f.courses.CreateCourse(ctx, ports.CreateCourseRequest{
		Name:         "Docker",
		InstructorID: "u1",
		Lessons:      []entities.Lesson{},
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", course.ID)

	stored, ok := f.reload(t).FindCourse("id-1")
	require.True(t, ok)
	assert.Equal(t, "Docker", stored.Name)

	_, err = f.courses.CreateCourse(ctx, ports.CreateCourseRequest{
		Name:         "Rust",
		InstructorID: "u2",
		Lessons:      []entities.Lesson{},
	})
	assert.True(t, errors.Is(err, entities.ErrValidation))
	assert.Len(t, f.reload(t).Courses, 3)
}

func TestCourseService_AddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rating := 4.0

	comment, err := f.courses.AddComment(ctx, ports.AddCommentRequest{
		CourseID: "c2",
		UserID:   "u2",
		Text:     "bom",
		Rating:   &rating,
	})
	require.NoError(t, err)
	assert.Equal(t, "c2", comment.CourseID)
	assert.Len(t, f.reload(t).Comments, 3)

	_, err = f.courses.AddComment(ctx, ports.AddCommentRequest{CourseID: "c9", UserID: "u2", Text: "x"})
	assert.ErrorIs(t, err, entities.ErrCourseNotFound)

	_, err = f.courses.AddComment(ctx, ports.AddCommentRequest{CourseID: "c1", UserID: "u9", Text: "x"})
	assert.ErrorIs(t, err, entities.ErrUserNotFound)
}

func TestCourseService_DeleteCoursesWithoutComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	removed, err := f.courses.DeleteCoursesWithoutComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	s := f.reload(t)
	require.Len(t, s.Courses, 1)
	assert.Equal(t, "c1", s.Courses[0].ID)

	removed, err = f.courses.DeleteCoursesWithoutComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCertificateService_IssueIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.certificates.IssueCertificates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	created, err = f.certificates.IssueCertificates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	perCourse, err := f.certificates.CertificatesPerCourse(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"c2": 1}, perCourse)

	s := f.reload(t)
	require.Len(t, s.Certificates, 1)
	assert.Equal(t, fixedNow, s.Certificates[0].IssuedAt.UTC())
}

func TestInstructorAndDatasetServices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	instructors, err := f.instructors.ListInstructors(ctx)
	require.NoError(t, err)
	require.Len(t, instructors, 1)
	assert.Equal(t, "u1", instructors[0].ID)

	count, err := f.instructors.CourseCount(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = f.instructors.CourseCount(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	stats, err := f.dataset.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.DatasetStats{Users: 3, Courses: 2, Comments: 2, Certificates: 0}, stats)
}

func TestCertificateService_IssueKeepsMistypedRecords(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.repo.Path(), []byte(`{
  "usuarios": [{"id": "u2", "tipo": "aluno", "progressoCursos": {"c1": 95}}],
  "cursos": [{"id": "c1", "nome": "Go", "instrutorId": "u1", "aulas": [{"titulo": "intro", "duracao": "30"}]}],
  "comentarios": [{"id": "k1", "cursoId": "c1", "usuarioId": "u2", "texto": "top", "nota": "5"}],
  "certificados": []
}`), 0o644))

	created, err := f.certificates.IssueCertificates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	s := f.reload(t)
	require.Len(t, s.Users, 1)
	require.Len(t, s.Courses, 1)
	require.Len(t, s.Comments, 1)
	require.Len(t, s.Certificates, 1)
	assert.Equal(t, "u2", s.Certificates[0].UserID)

	written, err := os.ReadFile(f.repo.Path())
	require.NoError(t, err)
	assert.Contains(t, string(written), `"duracao": "30"`)
	assert.Contains(t, string(written), `"nota": "5"`)
}
