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

// UserService handles user-related queries and progress updates
type UserService struct {
	repo    ports.SnapshotRepository
	engine  *commands.Engine
	logger  *logger.Logger
	metrics ports.Metrics
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(repo ports.SnapshotRepository, engine *commands.Engine, logger *logger.Logger, metrics ports.Metrics) *UserService {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UserService{
		repo:    repo,
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

// CoursesOfUser returns the courses a user is enrolled in
func (s *UserService) CoursesOfUser(ctx context.Context, userID string) ([]entities.Course, error) {
	return queries.CoursesOfUser(s.repo.Load(ctx), userID)
}

// CommentsOfUser returns every comment written by a user
func (s *UserService) CommentsOfUser(ctx context.Context, userID string) ([]entities.Comment, error) {
	return queries.CommentsOfUser(s.repo.Load(ctx), userID), nil
}

// UsersWithProgressAbove returns users with progress strictly above min on at least one course
func (s *UserService) UsersWithProgressAbove(ctx context.Context, min float64) ([]entities.User, error) {
	return queries.UsersWithProgressAbove(s.repo.Load(ctx), min), nil
}

// UsersGroupedByType counts users per type
func (s *UserService) UsersGroupedByType(ctx context.Context) (map[entities.UserType]int, error) {
	return queries.UsersGroupedByType(s.repo.Load(ctx)), nil
}

// UsersWithMultipleCertificates returns users holding more than one certificate
func (s *UserService) UsersWithMultipleCertificates(ctx context.Context) ([]entities.User, error) {
	return queries.UsersWithMultipleCertificates(s.repo.Load(ctx)), nil
}

// CourseStatusSummary classifies every course the user has progress on
func (s *UserService) CourseStatusSummary(ctx context.Context, userID string) (map[string]entities.CourseStatus, error) {
	return queries.CourseStatusSummary(s.repo.Load(ctx), userID)
}

// IncrementProgress advances a user's progress on a course and persists the dataset
func (s *UserService) IncrementProgress(ctx context.Context, userID, courseID string) (float64, error) {
	snapshot := s.repo.Load(ctx)

	progress, err := s.engine.IncrementProgress(snapshot, userID, courseID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("failed to save progress: %w", err)
	}

	s.metrics.ProgressIncremented()
	s.logger.LogMutation("progress_incremented", map[string]interface{}{
		"user_id":   userID,
		"course_id": courseID,
		"progress":  progress,
	})

	return progress, nil
}
