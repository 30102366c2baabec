package services

import (
	"context"

	"github.com/edutrack/core/internal/application/queries"
	"github.com/edutrack/core/internal/domain/entities"
	"github.com/edutrack/core/internal/ports"
)

// InstructorService answers instructor reports
type InstructorService struct {
	repo ports.SnapshotRepository
}

var _ ports.InstructorService = (*InstructorService)(nil)

// NewInstructorService creates a new instructor service
func NewInstructorService(repo ports.SnapshotRepository) *InstructorService {
	return &InstructorService{repo: repo}
}

func (s *InstructorService) ListInstructors(ctx context.Context) ([]entities.User, error) {
	return queries.Instructors(s.repo.Load(ctx)), nil
}

// CourseCount counts the courses owned by instructorID. Unknown ids count zero.
func (s *InstructorService) CourseCount(ctx context.Context, instructorID string) (int, error) {
	return queries.CourseCountByInstructor(s.repo.Load(ctx), instructorID), nil
}
