package services

import (
	"context"
	"fmt"

	"github.com/edutrack/core/internal/application/commands"
	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/infrastructure/logger"
	"github.com/edutrack/core/internal/ports"
)

// CourseService handles course reports and course/comment mutations
type CourseService struct {
	repo    ports.SnapshotRepository
	engine  *commands.Engine
	logger  *logger.Logger
	metrics ports.Metrics
}

var _ ports.CourseService = (*CourseService)(nil)

// NewCourseService creates a new course service
func NewCourseService(repo ports.SnapshotRepository, engine *commands.Engine, logger *logger.Logger, metrics ports.Metrics) *CourseService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &CourseService{
		repo:    repo,
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// CoursesWithManyComments returns courses with more than min comments
func (s *CourseService) CoursesWithManyComments(ctx context.Context, min float64) ([]entities.Course, error) {
	return queries.CoursesWithManyComments(s.repo.Load(ctx), min), nil
}

// AverageProgress returns the mean progress of users with progress on the course
func (s *CourseService) AverageProgress(ctx context.Context, courseID string) (float64, error) {
	return queries.AverageProgress(s.repo.Load(ctx), courseID)
}

// AverageRating returns the mean of the course's non-null ratings
func (s *CourseService) AverageRating(ctx context.Context, courseID string) (float64, error) {
	return queries.AverageRating(s.repo.Load(ctx), courseID)
}

// TotalDuration sums the durations of the course's lessons
func (s *CourseService) TotalDuration(ctx context.Context, courseID string) (float64, error) {
	return queries.TotalDuration(s.repo.Load(ctx), courseID)
}

// CoursesRankedByRating returns every course ordered by average rating, highest first
func (s *CourseService) CoursesRankedByRating(ctx context.Context) ([]entities.RankedCourse, error) {
	return queries.CoursesRankedByRating(s.repo.Load(ctx)), nil
}

// StudentsWithHighProgress returns users whose progress on the course is strictly above min
func (s *CourseService) StudentsWithHighProgress(ctx context.Context, courseID string, min float64) ([]entities.User, error) {
	return queries.StudentsWithHighProgress(s.repo.Load(ctx), courseID, min), nil
}

// CreateCourse adds a course for an existing instructor and persists the dataset
func (s *CourseService) CreateCourse(ctx context.Context, req ports.CreateCourseRequest) (*entities.Course, error) {
	snapshot := s.repo.Load(ctx)

	course, err := s.engine.CreateCourse(snapshot, commands.NewCourse{
		Name:         req.Name,
		InstructorID: req.InstructorID,
		Lessons:      req.Lessons,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	s.metrics.RecordCreated("course")
	s.logger.LogMutation("course_created", map[string]interface{}{
		"course_id":     course.ID,
		"instructor_id": course.InstructorID,
		"lessons":       len(course.Lessons),
	})

	return &course, nil
}

// AddComment records a comment on an existing course and persists the dataset
func (s *CourseService) AddComment(ctx context.Context, req ports.AddCommentRequest) (*entities.Comment, error) {
	snapshot := s.repo.Load(ctx)

	comment, err := s.engine.AddComment(snapshot, commands.NewComment{
		CourseID: req.CourseID,
		UserID:   req.UserID,
		Text:     req.Text,
		Rating:   req.Rating,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.metrics.RecordCreated("comment")
	s.logger.LogMutation("comment_added", map[string]interface{}{
		"comment_id": comment.ID,
		"course_id":  comment.CourseID,
		"user_id":    comment.UserID,
	})

	return &comment, nil
}

// DeleteCoursesWithoutComments removes every course nobody commented on.
// The dataset is saved even when nothing was removed.
func (s *CourseService) DeleteCoursesWithoutComments(ctx context.Context) (int, error) {
	snapshot := s.repo.Load(ctx)

	removed := s.engine.DeleteCoursesWithoutComments(snapshot)

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("failed to save dataset: %w", err)
	}

	s.metrics.CoursesPruned(removed)
	s.logger.LogMutation("courses_pruned", map[string]interface{}{
		"removed": removed,
	})

	return removed, nil
}
