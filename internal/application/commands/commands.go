// Package commands holds the state-changing operations on a dataset snapshot.
// Operations only modify the snapshot they are handed; persisting it is up to the caller.
package commands

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/edutrack/core/internal/domain/entities"
)

// Engine applies mutations to snapshots. It carries the id source and clock
// so that created records are reproducible in tests.
type Engine struct {
	NewID func() string
	Now   func() time.Time
}

// NewEngine returns an engine that assigns UUIDs and UTC timestamps.
func NewEngine() *Engine {
	return &Engine{
		NewID: uuid.NewString,
		Now:   func() time.Time { return time.Now().UTC() },
	}
}

// NewCourse is the input of CreateCourse. A nil Lessons slice is rejected; an empty one is fine.
type NewCourse struct {
	Name         string
	InstructorID string
	Lessons      []entities.Lesson
}

// NewComment is the input of AddComment.
type NewComment struct {
	CourseID string
	UserID   string
	Text     string
	Rating   *float64
}

// IncrementProgress advances the user's progress on courseID by one step, capped at 100,
// and returns the new value.
func (e *Engine) IncrementProgress(s *entities.Snapshot, userID, courseID string) (float64, error) {
	user, ok := s.FindUser(userID)
	if !ok {
		return 0, entities.ErrUserNotFound
	}

	if user.ProgressByCourse == nil {
		user.ProgressByCourse = make(map[string]float64)
	}

	next := user.ProgressByCourse[courseID] + entities.ProgressStep
	if next > entities.ProgressMax {
		next = entities.ProgressMax
	}
	user.ProgressByCourse[courseID] = next

	return next, nil
}

// CreateCourse appends a new course owned by an existing instructor.
func (e *Engine) CreateCourse(s *entities.Snapshot, in NewCourse) (entities.Course, error) {
	if in.Name == "" || in.InstructorID == "" || in.Lessons == nil {
		return entities.Course{}, entities.NewValidationError("name, instructor id and lessons are required")
	}

	instructor, ok := s.FindUser(in.InstructorID)
	if !ok || !instructor.IsInstructor() {
		return entities.Course{}, entities.ErrInstructorNotFound
	}

	course := entities.Course{
		ID:           e.NewID(),
		Name:         in.Name,
		InstructorID: in.InstructorID,
		Lessons:      in.Lessons,
	}
	s.Courses = append(s.Courses, course)

	return course, nil
}

// AddComment appends a comment on an existing course by an existing user.
func (e *Engine) AddComment(s *entities.Snapshot, in NewComment) (entities.Comment, error) {
	if in.UserID == "" || in.Text == "" {
		return entities.Comment{}, entities.NewValidationError("user id and text are required")
	}

	if _, ok := s.FindCourse(in.CourseID); !ok {
		return entities.Comment{}, entities.ErrCourseNotFound
	}
	if _, ok := s.FindUser(in.UserID); !ok {
		return entities.Comment{}, entities.ErrUserNotFound
	}

	comment := entities.Comment{
		ID:       e.NewID(),
		CourseID: in.CourseID,
		UserID:   in.UserID,
		Text:     in.Text,
		Rating:   in.Rating,
	}
	s.Comments = append(s.Comments, comment)

	return comment, nil
}

// IssueCertificates creates a certificate for every (user, course) pair with progress
// of at least 90 that does not have one yet, and returns how many were created.
func (e *Engine) IssueCertificates(s *entities.Snapshot) int {
	created := 0
	for _, user := range s.Users {
		courseIDs := make([]string, 0, len(user.ProgressByCourse))
		for courseID := range user.ProgressByCourse {
			courseIDs = append(courseIDs, courseID)
		}
		sort.Strings(courseIDs)

		for _, courseID := range courseIDs {
			if user.ProgressByCourse[courseID] < entities.CertificateMinProgress {
				continue
			}
			if s.HasCertificate(user.ID, courseID) {
				continue
			}
			s.Certificates = append(s.Certificates, entities.Certificate{
				ID:       e.NewID(),
				UserID:   user.ID,
				CourseID: courseID,
				IssuedAt: e.Now(),
			})
			created++
		}
	}
	return created
}

// DeleteCoursesWithoutComments removes every course no comment refers to and returns
// how many were removed. References to removed courses held by users and certificates
// are left as they are.
func (e *Engine) DeleteCoursesWithoutComments(s *entities.Snapshot) int {
	commented := make(map[string]struct{}, len(s.Comments))
	for _, c := range s.Comments {
		commented[c.CourseID] = struct{}{}
	}

	kept := make([]entities.Course, 0, len(s.Courses))
	for _, course := range s.Courses {
		if _, ok := commented[course.ID]; ok {
			kept = append(kept, course)
		}
	}

	removed := len(s.Courses) - len(kept)
	s.Courses = kept
	return removed
}
